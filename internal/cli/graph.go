package cli

import (
	"context"
	"io"
)

// Graph writes the Mermaid diagram of the referenced machine to w.
func Graph(ctx context.Context, ws *Workspace, w io.Writer, ref string) error {
	m, err := ws.Machine(ctx, ref)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, m.Graph())
	return err
}
