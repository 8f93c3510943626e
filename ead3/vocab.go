package ead3

import (
	"strings"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
	"github.com/lehigh-university-libraries/findingaid/value"
)

// Vocabulary holds the controlled-access and descriptive values of a record.
type Vocabulary struct {
	AuthorCorporate []string
	Author2         string
	Institution     string
	Geographic      []string
	Topics          []string
	Authors         []string
	AuthorVariants  []string
	AuthorRoles     []string
	Contents        []string
	Languages       []string
	Physical        []string
	Measurements    string
	Material        []string
	Rights          string
	Thumbnail       string
}

func (m *Mapper) extractVocabulary(doc *document.Node) Vocabulary {
	placeholder := value.WithoutPlaceholder(m.markers.Placeholder)
	did := doc.Child("did")

	v := Vocabulary{
		AuthorCorporate: corporateAuthors(doc),
		Author2:         value.First(did.Query("origination/persname"), value.TermText),
		Institution:     value.First(did.Query("repository/corpname/part"), value.FullText),
		Geographic:      value.Collect(doc.Query("controlaccess/geogname"), value.TermText, placeholder),
		Topics:          value.Collect(doc.Query("controlaccess/subject"), value.TermText, placeholder),
		Contents:        contents(doc),
		Languages:       value.Collect(did.Query("langmaterial/language"), value.Attr("langcode")),
		Physical:        value.Collect(did.Query("physdesc/extent"), value.FullText, placeholder),
		Measurements:    value.First(did.Query("dimensions"), value.FullText),
		Material:        material(did),
		Rights:          rights(doc),
		Thumbnail:       m.thumbnail(did),
	}
	v.Authors, v.AuthorVariants, v.AuthorRoles = m.authors(doc)
	return v
}

func (v Vocabulary) write(r *record.Record) {
	r.SetList(schema.AuthorCorporate, v.AuthorCorporate)
	r.Set(schema.Author2, v.Author2)
	r.Set(schema.Institution, v.Institution)
	r.SetList(schema.Geographic, v.Geographic)
	r.SetList(schema.GeographicFacet, v.Geographic)
	r.SetList(schema.Topic, v.Topics)
	r.SetList(schema.TopicFacet, v.Topics)
	r.SetList(schema.Author, v.Authors)
	r.SetList(schema.AuthorVariant, v.AuthorVariants)
	r.SetList(schema.AuthorRole, v.AuthorRoles)
	if len(v.Authors) > 0 {
		r.Set(schema.AuthorSort, v.Authors[0])
	}
	r.SetList(schema.Contents, v.Contents)
	r.SetList(schema.Language, v.Languages)
	r.SetList(schema.Physical, v.Physical)
	r.Set(schema.Measurements, v.Measurements)
	r.SetList(schema.Material, v.Material)
	r.Set(schema.Rights, v.Rights)
	r.Set(schema.Thumbnail, v.Thumbnail)
}

// corporateAuthors lists the parts of each origination name followed by an
// "IDENT <identifier>" value, then the controlled-access corporate names.
func corporateAuthors(doc *document.Node) []string {
	var names []string
	for _, name := range doc.Query("did/origination/name | origination/name") {
		names = append(names, value.Collect(name.ChildrenNamed("part"), value.FullText)...)
		names = append(names, "IDENT "+name.AttrValue("identifier"))
	}
	return append(names, value.Collect(doc.Query("controlaccess/corpname"), value.TermText)...)
}

// authors sorts the parts of controlled-access names by their localtype.
// With fall-through enabled a primary name is also recorded as a variant
// twice, and an alternative name twice. Finna indexes rely on these counts.
func (m *Mapper) authors(doc *document.Node) (authors, variants, roles []string) {
	for _, name := range doc.Query("controlaccess/name") {
		for _, part := range name.ChildrenNamed("part") {
			text, ok := value.Clean(part.InnerText())
			if !ok {
				continue
			}
			localType := part.AttrValue("localtype")

			if m.variantFallthrough {
				switch localType {
				case m.markers.PrimaryName:
					authors = append(authors, text)
					fallthrough
				case m.markers.AlternativeName:
					variants = append(variants, text)
					fallthrough
				case m.markers.DeprecatedName:
					variants = append(variants, text)
				}
				continue
			}

			switch localType {
			case m.markers.PrimaryName:
				authors = append(authors, text)
			case m.markers.AlternativeName, m.markers.DeprecatedName:
				variants = append(variants, text)
			}
		}
		if relator, ok := name.Attr("relator"); ok && relator != "" {
			roles = append(roles, relator)
		}
	}
	return authors, variants, roles
}

// contents takes the first name part of each index entry.
func contents(doc *document.Node) []string {
	var entries []*document.Node
	for _, entry := range doc.Query("index/index/indexentry") {
		if part := entry.Path("name", "part"); part != nil {
			entries = append(entries, part)
		}
	}
	return value.Collect(entries, value.FullText)
}

// material lists each physdesc's own text followed by its label.
func material(did *document.Node) []string {
	var out []string
	for _, p := range did.ChildrenNamed("physdesc") {
		s := strings.TrimSpace(p.Text())
		if label := p.AttrValue("label"); label != "" {
			s = strings.TrimSpace(s + " " + label)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// rights prefers the use restriction over the access restriction.
func rights(doc *document.Node) string {
	if s := value.First(doc.Query("did/userestrict/p | userestrict/p"), value.FullText); s != "" {
		return s
	}
	return value.First(doc.Query("did/accessrestrict/p | accessrestrict/p"), value.FullText)
}

func (m *Mapper) thumbnail(did *document.Node) string {
	daogrp := did.Child("daogrp")
	if daogrp == nil {
		return ""
	}
	for _, loc := range daogrp.ChildrenNamed("daoloc") {
		if loc.AttrValue("role") == m.markers.ThumbnailRole {
			return strings.TrimSpace(loc.AttrValue("href"))
		}
	}
	return ""
}

// description joins the scopecontent paragraphs, or takes the scopecontent
// text when there are none.
func description(doc *document.Node) string {
	scope := doc.Child("scopecontent")
	if scope == nil {
		return ""
	}
	paras := scope.ChildrenNamed("p")
	if len(paras) == 0 {
		return strings.TrimSpace(scope.InnerText())
	}
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = strings.TrimSpace(p.InnerText())
	}
	return strings.Join(texts, "   /   ")
}
