package transform

import (
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

func newOneCard() *fieldTransformer {
	return &fieldTransformer{
		component: domain.ComponentOneCard,
		build: func(base domain.ComponentDataBase, _ domain.ComponentMetadata, fields []domain.DataField, _ any) (domain.ComponentData, error) {
			cd := &domain.ComponentDataOneCard{ComponentDataBase: base}
			idx, img := findImageField(fields)
			if idx >= 0 {
				cd.Image = img
				fields = without(fields, idx)
			}
			cd.Fields = fields
			return cd, nil
		},
	}
}

var subtitleNames = map[string]bool{"title": true, "name": true, "header": true}

func newSetOfCards(expandAll bool) *fieldTransformer {
	return &fieldTransformer{
		component: domain.ComponentSetOfCards,
		build: func(base domain.ComponentDataBase, _ domain.ComponentMetadata, fields []domain.DataField, data any) (domain.ComponentData, error) {
			cd := &domain.ComponentDataSetOfCards{ComponentDataBase: base}
			if expandAll {
				cd.FieldsAll = CollectAllFields(fields, data)
			}
			subIdx := -1
			for i, f := range fields {
				if subtitleNames[strings.ToLower(strings.TrimSpace(f.Name))] {
					sub := f
					cd.SubtitleField = &sub
					subIdx = i
					break
				}
			}
			rest := without(fields, subIdx)
			if imgIdx, _ := findImageField(rest); imgIdx >= 0 {
				img := rest[imgIdx]
				cd.ImageField = &img
				rest = without(rest, imgIdx)
			}
			cd.Fields = rest
			return cd, nil
		},
	}
}

func newTable(expandAll bool) *fieldTransformer {
	return &fieldTransformer{
		component: domain.ComponentTable,
		build: func(base domain.ComponentDataBase, meta domain.ComponentMetadata, fields []domain.DataField, data any) (domain.ComponentData, error) {
			cd := &domain.ComponentDataTable{ComponentDataBase: base, Fields: fields, OnRowClick: meta.OnRowClick}
			if expandAll {
				cd.FieldsAll = CollectAllFields(fields, data)
			}
			return cd, nil
		},
	}
}

// handBuilt passes the parsed tree through to a caller-rendered component.
type handBuilt struct{}

func (handBuilt) Component() domain.Component { return domain.ComponentHandBuilt }

func (handBuilt) Process(meta domain.ComponentMetadata, data any) (domain.ComponentData, error) {
	return &domain.ComponentDataHandBuilt{
		ComponentDataBase: domain.ComponentDataBase{ID: meta.ID, Component: domain.ComponentHandBuilt},
		ComponentType:     meta.ComponentType,
		Data:              data,
	}, nil
}

func (h handBuilt) Validate(meta domain.ComponentMetadata, data any, errs []domain.ValidationError) (domain.ComponentData, []domain.ValidationError) {
	if meta.ComponentType == "" {
		errs = append(errs, domain.ValidationError{Code: "component_type.missing", Message: "hand-built component requires component_type"})
	}
	cd, _ := h.Process(meta, data)
	return cd, errs
}
