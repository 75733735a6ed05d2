// Command gen writes the component and system definitions used by ecs-stress.
//
//	go run ./gen -components 12 -systems 4 -out generated.go
package main

import (
	"bytes"
	"flag"
	"os"
	"text/template"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"
)

// Each system uses three components of its own, so systems*3 must not exceed
// components.
const componentsPerSystem = 3

type system struct {
	Index    int
	A, B, C  int
	Interval int
}

type model struct {
	Components []int
	Systems    []system
}

const source = `// Code generated by ecs-stress/gen. DO NOT EDIT.

package main

import "github.com/plus3/packecs/ecs"

const (
	componentCount = {{len .Components}}
	systemCount    = {{len .Systems}}
)
{{range .Components}}
type Component{{printf "%03d" .}} struct {
	Value float64
	Ticks uint32
}
{{end}}
var componentAdders = []func(m *ecs.EntityManager, e ecs.Entity){
{{- range .Components}}
	func(m *ecs.EntityManager, e ecs.Entity) { ecs.Insert(m, e, Component{{printf "%03d" .}}{Value: 1}) },
{{- end}}
}

func RegisterAllGeneratedComponents(registry *ecs.ComponentRegistry) {
{{- range .Components}}
	ecs.RegisterComponent[Component{{printf "%03d" .}}](registry)
{{- end}}
}
{{range .Systems}}
// System{{printf "%03d" .Index}} integrates Component{{printf "%03d" .A}} from Component{{printf "%03d" .B}} and
// toggles Component{{printf "%03d" .C}} every {{.Interval}} ticks.
type System{{printf "%03d" .Index}} struct {
	Items ecs.Query[struct {
		ecs.Entity
		A *Component{{printf "%03d" .A}}
		B *Component{{printf "%03d" .B}}
		C *Component{{printf "%03d" .C}} ` + "`ecs:\"none\"`" + `
	}]
	Marked ecs.Query[struct {
		ecs.Entity
		A *Component{{printf "%03d" .A}}
		C *Component{{printf "%03d" .C}}
	}]
}

func (s *System{{printf "%03d" .Index}}) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Items.Iter() {
		item.A.Value += item.B.Value * frame.DeltaTime
		item.A.Ticks++
		if item.A.Ticks%{{.Interval}} == 0 {
			frame.Commands.Add(item.Entity, ecs.Of[Component{{printf "%03d" .C}}]())
		}
	}
	for item := range s.Marked.Iter() {
		item.C.Ticks++
		if item.C.Ticks%{{.Interval}} == 0 {
			frame.Commands.Remove(item.Entity, ecs.Of[Component{{printf "%03d" .C}}]())
		}
	}
}
{{end}}
func RegisterAllGeneratedSystems(scheduler *ecs.Scheduler) {
{{- range .Systems}}
	scheduler.Register(&System{{printf "%03d" .Index}}{})
{{- end}}
}
`

func main() {
	components := flag.Int("components", 12, "Number of component types to generate.")
	systems := flag.Int("systems", 4, "Number of systems to generate.")
	out := flag.String("out", "generated.go", "Output file.")
	flag.Parse()

	log := logrus.New()

	if *systems*componentsPerSystem > *components {
		log.WithFields(logrus.Fields{
			"components": *components,
			"systems":    *systems,
		}).Fatal("each system needs three components of its own")
	}

	m := model{}
	for i := 0; i < *components; i++ {
		m.Components = append(m.Components, i)
	}
	for i := 0; i < *systems; i++ {
		base := i * componentsPerSystem
		m.Systems = append(m.Systems, system{
			Index:    i,
			A:        base,
			B:        base + 1,
			C:        base + 2,
			Interval: 7 + i%5,
		})
	}

	tmpl := template.Must(template.New("generated").Parse(source))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		log.WithError(err).Fatal("rendering template")
	}

	// imports.Process drops unused imports and gofmts the result.
	formatted, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		log.WithError(err).Fatal("formatting generated source")
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		log.WithError(err).Fatal("writing generated source")
	}

	log.WithFields(logrus.Fields{
		"file":       *out,
		"components": *components,
		"systems":    *systems,
	}).Info("generated")
}
