package domain

// ValidateInputData checks that an InputData can enter the pipeline.
func ValidateInputData(in InputData) error {
	if in.ID == "" {
		return Errorf(CodeNoInputData, "input id is required")
	}
	if IsBlank(in.Data) {
		return Errorf(CodeNoInputData, "input %q has no data", in.ID)
	}
	return nil
}

// ValidateComponentMetadata checks the structural invariants of a selection result.
func ValidateComponentMetadata(m ComponentMetadata) error {
	if !m.Component.Valid() {
		return Errorf(CodeInvalidComponentMetadata, "unknown component %q", m.Component)
	}
	if m.Component == ComponentHandBuilt {
		if m.ComponentType == "" {
			return Errorf(CodeInvalidComponentMetadata, "hand-built component requires component_type")
		}
		if m.Title != "" {
			return Errorf(CodeInvalidComponentMetadata, "hand-built component must have an empty title")
		}
		return nil
	}
	for i, f := range m.Fields {
		if f.DataPath == "" {
			return Errorf(CodeInvalidComponentMetadata, "fields[%d]: data_path is required", i)
		}
	}
	return nil
}
