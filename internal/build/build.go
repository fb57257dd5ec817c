package build

import (
	"strconv"
	"strings"

	"github.com/plcforge/ingot/internal/catalog"
	"github.com/plcforge/ingot/internal/l5x"
	"github.com/plcforge/ingot/internal/plc"
)

// Build maps a parsed document tree onto a controller graph,
// consulting the catalog registry for module definitions. reg may be
// nil when no catalog is loaded.
func Build(root *l5x.Node, reg *catalog.Registry) (*plc.Controller, error) {
	if root == nil {
		return nil, invalid("/", "document has no root")
	}
	if root.Name != l5x.RootName {
		return nil, invalid("/"+root.Name, "document element must be %s", l5x.RootName)
	}
	rootPath := "/" + root.Name

	ctrlNode := root.Child("Controller")
	if ctrlNode == nil {
		return nil, invalid(rootPath, "missing Controller element")
	}
	ctrlPath := rootPath + "/Controller"

	name, ok := ctrlNode.Attr("Name")
	if !ok || name == "" {
		return nil, invalid(ctrlPath, "controller requires a Name attribute")
	}

	c := plc.NewController(name)
	c.Source = root
	c.ProcessorType = ctrlNode.AttrDefault("ProcessorType", "")
	c.MajorRev = ctrlNode.AttrDefault("MajorRev", "")
	c.CommsPath = ctrlNode.AttrDefault("CommPath", "")
	if slot, ok := ctrlNode.Attr("Slot"); ok {
		n, err := strconv.Atoi(slot)
		if err != nil {
			return nil, invalid(ctrlPath, "malformed Slot attribute %q", slot)
		}
		c.Slot = n
	}

	for _, child := range ctrlNode.Children {
		switch child.Name {
		case "DataTypes":
			if err := buildContainer(c, child, ctrlPath+"/DataTypes", "DataType", buildDatatype); err != nil {
				return nil, err
			}
		case "Modules":
			if err := buildContainer(c, child, ctrlPath+"/Modules", "Module", buildModule); err != nil {
				return nil, err
			}
		case "AddOnInstructionDefinitions":
			if err := buildContainer(c, child, ctrlPath+"/AddOnInstructionDefinitions",
				"AddOnInstructionDefinition", buildAOI); err != nil {
				return nil, err
			}
		case "Tags":
			if err := buildContainer(c, child, ctrlPath+"/Tags", "Tag", buildControllerTag); err != nil {
				return nil, err
			}
		case "Programs":
			if err := buildContainer(c, child, ctrlPath+"/Programs", "Program", buildProgram); err != nil {
				return nil, err
			}
		case "SafetyInfo":
			buildSafetyInfo(c, child)
		default:
			c.Extra = append(c.Extra, child)
		}
	}

	applyCatalog(c, reg)
	c.ResolveReferences()
	return c, nil
}

// buildContainer walks one plural container, dispatching children with
// the expected element name and passing the rest through.
func buildContainer(c *plc.Controller, container *l5x.Node, path, want string,
	build func(*plc.Controller, *l5x.Node, string) error) error {
	for _, n := range container.Children {
		if n.Name != want {
			c.Extra = append(c.Extra, n)
			continue
		}
		childPath := path + "/" + want
		if name, ok := n.Attr("Name"); ok {
			childPath += "[" + name + "]"
		}
		if err := build(c, n, childPath); err != nil {
			return err
		}
	}
	return nil
}

func buildDatatype(c *plc.Controller, n *l5x.Node, path string) error {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return invalid(path, "datatype requires a Name attribute")
	}

	d := plc.NewDatatype(name)
	d.Source = n
	d.Family = n.AttrDefault("Family", "")
	if n.AttrDefault("Class", "") == string(plc.ClassSafety) {
		d.Class = plc.ClassSafety
	}

	for _, child := range n.Children {
		if child.Name != "Members" {
			d.Extra = append(d.Extra, child)
			continue
		}
		for _, mn := range child.Children {
			if mn.Name != "Member" {
				d.Extra = append(d.Extra, mn)
				continue
			}
			m, err := buildMember(mn, path)
			if err != nil {
				return err
			}
			if err := d.AddMember(m); err != nil {
				return invalidWrap(path+"/Members/Member["+m.Name+"]", err)
			}
		}
	}

	if err := c.AddDatatype(d); err != nil {
		return invalidWrap(path, err)
	}
	return nil
}

func buildMember(n *l5x.Node, parentPath string) (*plc.Member, error) {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return nil, invalid(parentPath+"/Members/Member", "member requires a Name attribute")
	}
	m := &plc.Member{
		Name:         name,
		DataTypeName: n.AttrDefault("DataType", ""),
		Dimension:    n.AttrDefault("Dimension", ""),
		Radix:        n.AttrDefault("Radix", ""),
		Hidden:       boolAttr(n, "Hidden"),
		Target:       n.AttrDefault("Target", ""),
		Source:       n,
	}
	if bit, ok := n.Attr("BitNumber"); ok {
		v, err := strconv.Atoi(bit)
		if err != nil {
			return nil, invalid(parentPath+"/Members/Member["+name+"]",
				"malformed BitNumber attribute %q", bit)
		}
		m.BitNumber = v
		m.HasBitNumber = true
	}
	if desc := n.Child("Description"); desc != nil {
		m.Description = desc.Text
	}
	return m, nil
}

func buildModule(c *plc.Controller, n *l5x.Node, path string) error {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return invalid(path, "module requires a Name attribute")
	}

	m := plc.NewModule(name, n.AttrDefault("CatalogNumber", ""))
	m.Source = n
	m.Vendor = n.AttrDefault("Vendor", "")
	m.ProductType = n.AttrDefault("ProductType", "")
	m.ProductCode = n.AttrDefault("ProductCode", "")
	m.Major = n.AttrDefault("Major", "")
	m.Minor = n.AttrDefault("Minor", "")
	m.ParentName = n.AttrDefault("ParentModule", "")
	m.Inhibited = boolAttr(n, "Inhibited")
	m.SafetyEnabled = boolAttr(n, "SafetyEnabled")
	if port, ok := n.Attr("ParentModPortId"); ok {
		v, err := strconv.Atoi(port)
		if err != nil {
			return invalid(path, "malformed ParentModPortId attribute %q", port)
		}
		m.ParentModPort = v
	}

	for _, child := range n.Children {
		switch child.Name {
		case "EKey":
			m.EKey = child.AttrDefault("State", "")
		case "Ports":
			for _, pn := range child.Children {
				if pn.Name != "Port" {
					m.Extra = append(m.Extra, pn)
					continue
				}
				addr := pn.AttrDefault("Address", "")
				if pn.AttrDefault("Type", "") == "Ethernet" {
					m.IPAddress = addr
				} else if slot, err := strconv.Atoi(addr); err == nil {
					m.Slot = slot
					m.HasSlot = true
				}
			}
		case "Connections":
			for _, cn := range child.Children {
				if cn.Name != "Connection" {
					m.Extra = append(m.Extra, cn)
					continue
				}
				cp, err := buildConnection(cn, path)
				if err != nil {
					return err
				}
				m.AddConnection(cp)
			}
		default:
			m.Extra = append(m.Extra, child)
		}
	}

	if err := c.AddModule(m); err != nil {
		return invalidWrap(path, err)
	}
	return nil
}

func buildConnection(n *l5x.Node, parentPath string) (*plc.ConnectionPoint, error) {
	cp := &plc.ConnectionPoint{
		Name:   n.AttrDefault("Name", ""),
		Type:   n.AttrDefault("Type", ""),
		Source: n,
	}
	for attr, dst := range map[string]*int{
		"InputSize":  &cp.InputSize,
		"OutputSize": &cp.OutputSize,
	} {
		if raw, ok := n.Attr(attr); ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, invalid(parentPath+"/Connections/Connection["+cp.Name+"]",
					"malformed %s attribute %q", attr, raw)
			}
			*dst = v
		}
	}
	return cp, nil
}

func buildControllerTag(c *plc.Controller, n *l5x.Node, path string) error {
	t, err := buildTag(n, path)
	if err != nil {
		return err
	}
	if err := c.AddTag(t); err != nil {
		return invalidWrap(path, err)
	}
	return nil
}

func buildTag(n *l5x.Node, path string) (*plc.Tag, error) {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return nil, invalid(path, "tag requires a Name attribute")
	}

	t := plc.NewTag(name, n.AttrDefault("DataType", ""))
	t.Source = n
	t.Dimensions = n.AttrDefault("Dimensions", "")
	t.Radix = n.AttrDefault("Radix", "")
	t.TagType = n.AttrDefault("TagType", "Base")
	t.AliasFor = n.AttrDefault("AliasFor", "")
	t.Constant = boolAttr(n, "Constant")
	t.ExternalAccess = n.AttrDefault("ExternalAccess", "")
	if n.AttrDefault("Class", "") == string(plc.ClassSafety) {
		t.Class = plc.ClassSafety
	}
	for _, child := range n.Children {
		if child.Name == "Description" {
			t.Description = child.Text
			continue
		}
		t.Extra = append(t.Extra, child)
	}
	return t, nil
}

func buildProgram(c *plc.Controller, n *l5x.Node, path string) error {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return invalid(path, "program requires a Name attribute")
	}

	p := plc.NewProgram(name)
	p.Source = n
	p.MainName = n.AttrDefault("MainRoutineName", "")
	p.Disabled = boolAttr(n, "Disabled")
	if n.AttrDefault("Class", "") == string(plc.ClassSafety) {
		p.Class = plc.ClassSafety
	}
	if err := c.AddProgram(p); err != nil {
		return invalidWrap(path, err)
	}

	for _, child := range n.Children {
		switch child.Name {
		case "Tags":
			for _, tn := range child.Children {
				if tn.Name != "Tag" {
					p.Extra = append(p.Extra, tn)
					continue
				}
				tagPath := path + "/Tags/Tag[" + tn.AttrDefault("Name", "") + "]"
				t, err := buildTag(tn, tagPath)
				if err != nil {
					return err
				}
				if err := p.AddTag(t); err != nil {
					return invalidWrap(tagPath, err)
				}
			}
		case "Routines":
			for _, rn := range child.Children {
				if rn.Name != "Routine" {
					p.Extra = append(p.Extra, rn)
					continue
				}
				r, err := buildRoutine(rn, path)
				if err != nil {
					return err
				}
				if err := p.AddRoutine(r); err != nil {
					return invalidWrap(path+"/Routines/Routine["+r.Name+"]", err)
				}
			}
		default:
			p.Extra = append(p.Extra, child)
		}
	}
	return nil
}

func buildRoutine(n *l5x.Node, parentPath string) (*plc.Routine, error) {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return nil, invalid(parentPath+"/Routines/Routine", "routine requires a Name attribute")
	}
	path := parentPath + "/Routines/Routine[" + name + "]"

	typ := plc.RoutineType(n.AttrDefault("Type", string(plc.RoutineRelayLadder)))
	r := plc.NewRoutine(name, typ)
	r.Source = n

	for _, child := range n.Children {
		if child.Name != "RLLContent" || typ != plc.RoutineRelayLadder {
			r.Extra = append(r.Extra, child)
			continue
		}
		for _, gn := range child.Children {
			if gn.Name != "Rung" {
				r.Extra = append(r.Extra, gn)
				continue
			}
			g, err := buildRung(gn, path)
			if err != nil {
				return nil, err
			}
			if err := r.AddRung(g); err != nil {
				return nil, invalidWrap(path+"/RLLContent/Rung", err)
			}
		}
	}
	return r, nil
}

func buildRung(n *l5x.Node, parentPath string) (*plc.Rung, error) {
	raw, ok := n.Attr("Number")
	if !ok {
		return nil, invalid(parentPath+"/RLLContent/Rung", "rung requires a Number attribute")
	}
	number, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid(parentPath+"/RLLContent/Rung",
			"malformed Number attribute %q", raw)
	}

	text := ""
	if tn := n.Child("Text"); tn != nil {
		text = strings.TrimSpace(tn.Text)
	}
	g := plc.NewRung(number, text)
	g.Source = n
	g.Type = n.AttrDefault("Type", "N")
	if cn := n.Child("Comment"); cn != nil {
		g.Comment = strings.TrimSpace(cn.Text)
	}
	return g, nil
}

func buildAOI(c *plc.Controller, n *l5x.Node, path string) error {
	name, ok := n.Attr("Name")
	if !ok || name == "" {
		return invalid(path, "add-on instruction requires a Name attribute")
	}

	a := plc.NewAOI(name)
	a.Source = n
	a.Revision = n.AttrDefault("Revision", "")
	a.Vendor = n.AttrDefault("Vendor", "")

	for _, child := range n.Children {
		switch child.Name {
		case "Description":
			a.Description = child.Text
		case "Parameters":
			for _, pn := range child.Children {
				if pn.Name != "Parameter" {
					a.Extra = append(a.Extra, pn)
					continue
				}
				param := &plc.Parameter{
					Name:         pn.AttrDefault("Name", ""),
					DataTypeName: pn.AttrDefault("DataType", ""),
					Usage:        pn.AttrDefault("Usage", ""),
					Required:     boolAttr(pn, "Required"),
					Visible:      boolAttr(pn, "Visible"),
					Source:       pn,
				}
				if err := a.AddParameter(param); err != nil {
					return invalidWrap(path+"/Parameters/Parameter["+param.Name+"]", err)
				}
			}
		case "LocalTags":
			for _, tn := range child.Children {
				if tn.Name != "LocalTag" {
					a.Extra = append(a.Extra, tn)
					continue
				}
				t, err := buildTag(tn, path+"/LocalTags/LocalTag["+tn.AttrDefault("Name", "")+"]")
				if err != nil {
					return err
				}
				if err := a.AddLocalTag(t); err != nil {
					return invalidWrap(path+"/LocalTags/LocalTag["+t.Name+"]", err)
				}
			}
		case "Routines":
			for _, rn := range child.Children {
				if rn.Name != "Routine" {
					a.Extra = append(a.Extra, rn)
					continue
				}
				r, err := buildRoutine(rn, path)
				if err != nil {
					return err
				}
				if err := a.AddRoutine(r); err != nil {
					return invalidWrap(path+"/Routines/Routine["+r.Name+"]", err)
				}
			}
		default:
			a.Extra = append(a.Extra, child)
		}
	}

	if err := c.AddAOI(a); err != nil {
		return invalidWrap(path, err)
	}
	return nil
}

func buildSafetyInfo(c *plc.Controller, n *l5x.Node) {
	c.Safety.SafetyLevel = n.AttrDefault("SafetyLevel", "")
	c.Safety.SafetyLocked = boolAttr(n, "SafetyLocked")
	c.Safety.ConfigureSafetyIOAlways = boolAttr(n, "ConfigureSafetyIOAlways")
	c.Safety.SignatureRunModeProtected = boolAttr(n, "SignatureRunModeProtected")

	// SafetyTagMap text is "Standard=Safety" pairs, comma separated.
	if tm := n.Child("SafetyTagMap"); tm != nil {
		for _, pair := range strings.Split(tm.Text, ",") {
			std, safe, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok {
				continue
			}
			c.Safety.AddMapping(strings.TrimSpace(std), strings.TrimSpace(safe))
		}
	}
}

// applyCatalog matches each module against the registry and attaches
// the definition's controls type and expanded templates.
func applyCatalog(c *plc.Controller, reg *catalog.Registry) {
	if reg == nil {
		return
	}
	for _, m := range c.Modules() {
		def := reg.Match(m)
		if def == nil {
			continue
		}
		m.Controls = def.ControlsType
		m.DefinitionID = def.ID()

		exp := def.Expand(m)
		for _, tag := range exp.Tags {
			m.GeneratedTags = append(m.GeneratedTags, plc.GeneratedTag{
				Name:     tag.Name,
				DataType: tag.DataType,
				Class:    tag.Class,
			})
		}
		for _, rung := range exp.Rungs {
			m.GeneratedRungs = append(m.GeneratedRungs, plc.GeneratedRung{
				Routine: rung.Routine,
				Text:    rung.Text,
				Comment: rung.Comment,
			})
		}
	}
}

// boolAttr reads a vendor-format boolean attribute; absent or
// unrecognized values are false.
func boolAttr(n *l5x.Node, name string) bool {
	v, ok := n.Attr(name)
	if !ok {
		return false
	}
	return strings.EqualFold(v, "true")
}
