/*
Package dsl provides a fluent builder for constructing machine definitions
in Go instead of YAML or JSON files.

States and tape symbols are collected from the rules as they are added, so
only the input alphabet, the blank symbol and the initial and final states
need to be declared. Build validates the result.

	b := dsl.New("even-as").
		Input("a").
		Blank("_").
		Initial("even").
		Final("accept")

	b.State("even").
		On("a").Write("a").Right().Goto("odd").
		On("_").Stay().Goto("accept")

	b.State("odd").
		On("a").Right().Goto("even")

	def, err := b.Build()
*/
package dsl
