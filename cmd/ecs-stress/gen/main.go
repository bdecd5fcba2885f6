// Command gen writes the generated components and systems used by ecs-stress.
//
//	go run ./cmd/ecs-stress/gen -components 8 -systems 4 -out cmd/ecs-stress/generated.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/rotisserie/eris"
	"golang.org/x/tools/imports"
)

const source = `// Code generated by ecs-stress/gen. DO NOT EDIT.

package main

import (
	"math/rand/v2"

	"github.com/plus3/jmge/ecs"
)

const (
	componentCount = {{.Components}}
	systemCount    = {{.Systems}}
)
{{range .ComponentNames}}
type {{.}} struct {
	Value float64
	Ticks int
}
{{end}}
// RegisterAllGeneratedComponents registers every generated component type.
func RegisterAllGeneratedComponents(w *ecs.World) {
{{- range .ComponentNames}}
	ecs.RegisterComponent[{{.}}](w)
{{- end}}
}

var componentSetters = [componentCount]func(w *ecs.World, e ecs.Entity, rng *rand.Rand){
{{- range .ComponentNames}}
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) { ecs.Set(w, e, {{.}}{Value: rng.Float64()}) },
{{- end}}
}

// SpawnRandomEntity creates an entity with numComponents distinct generated
// components picked at random.
func SpawnRandomEntity(w *ecs.World, rng *rand.Rand, numComponents int) ecs.Entity {
	e := w.NewEntity()
	for _, i := range rng.Perm(componentCount)[:min(numComponents, componentCount)] {
		componentSetters[i](w, e, rng)
	}
	return e
}
{{range .SystemDefs}}
type {{.Name}} struct{}

func ({{.Name}}) Run(w *ecs.World) {
	for {{if .Reads}}e{{else}}_{{end}}, c := range ecs.IterMut[{{.Writes}}](w) {
		c.Ticks++
{{- if .Reads}}
		ecs.Read(w, e, func(o *{{.Reads}}) { c.Value += o.Value * 0.001 })
{{- end}}
	}
}
{{end}}
// RegisterAllGeneratedSystems adds every generated system to w.
func RegisterAllGeneratedSystems(w *ecs.World) {
{{- range .SystemDefs}}
	w.AddSystem("{{.Name}}", {{.Name}}{})
{{- end}}
}
`

type systemDef struct {
	Name   string
	Writes string
	Reads  string
}

type params struct {
	Components     int
	Systems        int
	ComponentNames []string
	SystemDefs     []systemDef
}

func newParams(components, systems int) (params, error) {
	if components < 1 {
		return params{}, eris.Errorf("need at least one component, got %d", components)
	}
	if systems < 0 {
		return params{}, eris.Errorf("negative system count %d", systems)
	}

	p := params{Components: components, Systems: systems}
	for i := range components {
		p.ComponentNames = append(p.ComponentNames, fmt.Sprintf("Component%03d", i))
	}
	for i := range systems {
		def := systemDef{
			Name:   fmt.Sprintf("System%03d", i),
			Writes: p.ComponentNames[i%components],
		}
		// A system never reads the type it iterates mutably.
		if components > 1 {
			def.Reads = p.ComponentNames[(i+1)%components]
		}
		p.SystemDefs = append(p.SystemDefs, def)
	}
	return p, nil
}

// generate renders the source for the given sizes and formats it, dropping
// imports the output does not use.
func generate(out io.Writer, components, systems int) error {
	p, err := newParams(components, systems)
	if err != nil {
		return err
	}

	tmpl, err := template.New("generated").Parse(source)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return err
	}

	formatted, err := imports.Process("generated.go", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return eris.Wrap(err, "formatting generated code")
	}

	_, err = out.Write(formatted)
	return err
}

func main() {
	components := flag.Int("components", 8, "Number of component types to generate.")
	systems := flag.Int("systems", 4, "Number of systems to generate.")
	outPath := flag.String("out", "generated.go", "Output file.")
	flag.Parse()

	var buf bytes.Buffer
	if err := generate(&buf, *components, *systems); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
