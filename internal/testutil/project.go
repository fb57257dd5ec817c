// Package testutil builds sample project documents for tests.
//
// The builders produce l5x.Node trees directly, so tests can assemble a
// controller with a few calls instead of maintaining XML literals. The
// resulting tree serializes to the normalized layout, which makes it
// usable as a round-trip fixture too.
package testutil

import (
	"strconv"

	"github.com/plcforge/ingot/internal/l5x"
)

// ProjectBuilder assembles an in-memory project document.
type ProjectBuilder struct {
	controller *l5x.Node

	datatypes *l5x.Node
	modules   *l5x.Node
	aois      *l5x.Node
	tags      *l5x.Node
	programs  *l5x.Node
}

// NewProject starts a document for a controller with the given name.
func NewProject(name string) *ProjectBuilder {
	return &ProjectBuilder{
		controller: &l5x.Node{
			Name:  "Controller",
			Attrs: []l5x.Attr{{Name: "Name", Value: name}},
		},
	}
}

// container lazily creates the named plural container in its canonical
// position. Containers appear in the order they are first used.
func (b *ProjectBuilder) container(slot **l5x.Node, name string) *l5x.Node {
	if *slot == nil {
		*slot = &l5x.Node{Name: name}
		b.controller.Children = append(b.controller.Children, *slot)
	}
	return *slot
}

// Datatype adds a user-defined type with BOOL members of the given names.
func (b *ProjectBuilder) Datatype(name string, members ...string) *ProjectBuilder {
	dt := &l5x.Node{
		Name:  "DataType",
		Attrs: []l5x.Attr{{Name: "Name", Value: name}},
	}
	if len(members) > 0 {
		ms := &l5x.Node{Name: "Members"}
		for _, m := range members {
			ms.Children = append(ms.Children, &l5x.Node{
				Name: "Member",
				Attrs: []l5x.Attr{
					{Name: "Name", Value: m},
					{Name: "DataType", Value: "BOOL"},
				},
			})
		}
		dt.Children = append(dt.Children, ms)
	}
	c := b.container(&b.datatypes, "DataTypes")
	c.Children = append(c.Children, dt)
	return b
}

// Module adds a hardware module with an optional connection point.
func (b *ProjectBuilder) Module(name, catalogNumber, parent string) *ProjectBuilder {
	m := &l5x.Node{
		Name: "Module",
		Attrs: []l5x.Attr{
			{Name: "Name", Value: name},
			{Name: "CatalogNumber", Value: catalogNumber},
			{Name: "ParentModule", Value: parent},
		},
	}
	c := b.container(&b.modules, "Modules")
	c.Children = append(c.Children, m)
	return b
}

// ModuleConnection adds a connection point to the most recent module.
func (b *ProjectBuilder) ModuleConnection(name string, inputSize, outputSize int) *ProjectBuilder {
	mods := b.modules.Children
	m := mods[len(mods)-1]
	conns := m.Child("Connections")
	if conns == nil {
		conns = &l5x.Node{Name: "Connections"}
		m.Children = append(m.Children, conns)
	}
	conns.Children = append(conns.Children, &l5x.Node{
		Name: "Connection",
		Attrs: []l5x.Attr{
			{Name: "Name", Value: name},
			{Name: "InputSize", Value: strconv.Itoa(inputSize)},
			{Name: "OutputSize", Value: strconv.Itoa(outputSize)},
		},
	})
	return b
}

// AOI adds an add-on instruction definition.
func (b *ProjectBuilder) AOI(name string) *ProjectBuilder {
	c := b.container(&b.aois, "AddOnInstructionDefinitions")
	c.Children = append(c.Children, &l5x.Node{
		Name:  "AddOnInstructionDefinition",
		Attrs: []l5x.Attr{{Name: "Name", Value: name}},
	})
	return b
}

// Tag adds a controller-scope tag.
func (b *ProjectBuilder) Tag(name, datatype string) *ProjectBuilder {
	c := b.container(&b.tags, "Tags")
	c.Children = append(c.Children, tagNode(name, datatype))
	return b
}

// Program adds a program with a single RLL routine holding the given
// rung texts. The routine becomes the program's main routine.
func (b *ProjectBuilder) Program(name string, rungs ...string) *ProjectBuilder {
	return b.program(name, "", rungs)
}

// SafetyProgram adds a program with Class="Safety".
func (b *ProjectBuilder) SafetyProgram(name string, rungs ...string) *ProjectBuilder {
	return b.program(name, "Safety", rungs)
}

func (b *ProjectBuilder) program(name, class string, rungs []string) *ProjectBuilder {
	p := &l5x.Node{
		Name:  "Program",
		Attrs: []l5x.Attr{{Name: "Name", Value: name}},
	}
	if class != "" {
		p.Attrs = append(p.Attrs, l5x.Attr{Name: "Class", Value: class})
	}
	p.Attrs = append(p.Attrs, l5x.Attr{Name: "MainRoutineName", Value: "Main"})

	routine := &l5x.Node{
		Name: "Routine",
		Attrs: []l5x.Attr{
			{Name: "Name", Value: "Main"},
			{Name: "Type", Value: "RLL"},
		},
	}
	if len(rungs) > 0 {
		content := &l5x.Node{Name: "RLLContent"}
		for i, text := range rungs {
			content.Children = append(content.Children, &l5x.Node{
				Name: "Rung",
				Attrs: []l5x.Attr{
					{Name: "Number", Value: strconv.Itoa(i)},
					{Name: "Type", Value: "N"},
				},
				Children: []*l5x.Node{{Name: "Text", Text: text}},
			})
		}
		routine.Children = append(routine.Children, content)
	}
	p.Children = append(p.Children, &l5x.Node{
		Name:     "Routines",
		Children: []*l5x.Node{routine},
	})

	c := b.container(&b.programs, "Programs")
	c.Children = append(c.Children, p)
	return b
}

// ProgramTag adds a program-scope tag to the most recent program.
func (b *ProjectBuilder) ProgramTag(name, datatype string) *ProjectBuilder {
	progs := b.programs.Children
	p := progs[len(progs)-1]
	tags := p.Child("Tags")
	if tags == nil {
		// Program tags precede routines in an export.
		tags = &l5x.Node{Name: "Tags"}
		p.Children = append([]*l5x.Node{tags}, p.Children...)
	}
	tags.Children = append(tags.Children, tagNode(name, datatype))
	return b
}

// Node returns the document root.
func (b *ProjectBuilder) Node() *l5x.Node {
	name, _ := b.controller.Attr("Name")
	return &l5x.Node{
		Name:     l5x.RootName,
		Attrs:    []l5x.Attr{{Name: "TargetName", Value: name}},
		Children: []*l5x.Node{b.controller},
	}
}

// Bytes returns the document in the normalized serialized form.
func (b *ProjectBuilder) Bytes() []byte {
	data, err := l5x.Marshal(b.Node())
	if err != nil {
		panic(err)
	}
	return data
}

func tagNode(name, datatype string) *l5x.Node {
	return &l5x.Node{
		Name: "Tag",
		Attrs: []l5x.Attr{
			{Name: "Name", Value: name},
			{Name: "TagType", Value: "Base"},
			{Name: "DataType", Value: datatype},
		},
	}
}
