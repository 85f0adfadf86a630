package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Overlay contains run data to highlight on the diagram.
type Overlay struct {
	Visited []domain.State
	Current domain.State
}

// GenerateMermaid produces a Mermaid state diagram for a machine definition.
// The initial state is entered from [*] and final states exit to [*].
// Each transition edge is labelled "read/write,move". Edges that share a
// source and target are merged into one label.
func GenerateMermaid(def domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    direction LR\n")

	for _, s := range def.States {
		id := sanitizeMermaidID(string(s))
		if id != string(s) {
			fmt.Fprintf(&sb, "    state \"%s\" as %s\n", s, id)
		}
	}

	fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(string(def.InitialState)))

	for _, from := range def.Transitions.SourceStates() {
		paths := def.Transitions[from]
		var targets []domain.State
		labels := make(map[domain.State][]string)
		for _, sym := range paths.Symbols() {
			res := paths[sym]
			if _, seen := labels[res.Next]; !seen {
				targets = append(targets, res.Next)
			}
			labels[res.Next] = append(labels[res.Next], fmt.Sprintf("%s/%s,%s", escapeLabel(string(sym)), escapeLabel(string(res.Write)), res.Move))
		}
		for _, to := range targets {
			fmt.Fprintf(&sb, "    %s --> %s: %s\n",
				sanitizeMermaidID(string(from)),
				sanitizeMermaidID(string(to)),
				strings.Join(labels[to], " | "),
			)
		}
	}

	for _, f := range def.FinalStates {
		fmt.Fprintf(&sb, "    %s --> [*]\n", sanitizeMermaidID(string(f)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps the labels readable on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[string]bool)
		for _, s := range overlay.Visited {
			id := sanitizeMermaidID(string(s))
			if id == "" || seen[id] || s == overlay.Current {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited\n", id)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current\n", sanitizeMermaidID(string(overlay.Current)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", ":", "_")
	return r.Replace(id)
}

// escapeLabel keeps symbols that Mermaid treats as syntax out of edge labels.
func escapeLabel(s string) string {
	switch s {
	case ":":
		return "#58;"
	case "|":
		return "#124;"
	case " ":
		return "␣"
	}
	return s
}
