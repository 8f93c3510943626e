package ead3

import (
	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// resolveHierarchy links the record to its archive and parent as recorded in
// add-data by the harvester. A record without a parent is a hierarchy root
// and anchors itself.
func (m *Mapper) resolveHierarchy(doc *document.Node, r *record.Record, id, titleShort string) {
	r.Set(schema.HierarchyType, HierarchyType)

	addData := doc.Child("add-data")

	if archive := addData.Child("archive"); archive != nil {
		topTitle := archive.AttrValue("title")
		if sub := archive.AttrValue("subtitle"); sub != "" {
			topTitle += " : " + sub
		}
		r.Set(schema.HierarchyTopID, archive.AttrValue("id"))
		r.Set(schema.HierarchyTopTitle, topTitle)
		r.Append(schema.AllFields, topTitle)

		if seq := archive.AttrValue("sequence"); seq != "" {
			r.Set(schema.HierarchySequence, seq)
			r.Set(schema.HierarchySequenceStr, seq)
		}
	}

	if parent := addData.Child("parent"); parent != nil {
		title := parent.AttrValue("title")
		r.Set(schema.HierarchyParentID, parent.AttrValue("id"))
		r.Set(schema.HierarchyParentTitle, title)
		r.Append(schema.AllFields, title)
		return
	}

	r.Set(schema.IsHierarchyID, id)
	r.Set(schema.HierarchyTopID, id)
	r.Set(schema.IsHierarchyTitle, titleShort)
	r.Set(schema.HierarchyTopTitle, titleShort)
}
