package classify

// DefaultDescriptors is the built-in vendor descriptor set. Callers
// that need custom families register their own descriptors instead.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID: "GM",
			Datatypes: []string{
				"zz_Version",
				"zz_Prompt",
				"zz_PFEAlarm",
				"za_Toggle",
			},
			Modules: []string{
				"sz_*",
				"zz_*",
				"cg_*",
				"zs_*",
			},
			Programs: []string{
				"MCP",
				"PFE",
				"GROUP1",
				"GROUP2",
				"HMI1",
				"HMI2",
			},
			SafetyPrograms: []string{
				"s_Common",
				"s_Segment1",
				"s_Segment2",
			},
			Tags: []string{
				"z_FifoDataElement",
				"z_JunkData",
				"z_NoData",
			},
		},
	}
}

// DefaultRegistry returns a registry preloaded with the built-in
// descriptors.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, desc := range DefaultDescriptors() {
		if err := reg.Register(desc); err != nil {
			panic(err)
		}
	}
	return reg
}
