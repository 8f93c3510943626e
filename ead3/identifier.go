package ead3

import (
	"errors"
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/findingaid/document"
)

// ErrNoIdentifier is wrapped by every identifier resolution failure.
var ErrNoIdentifier = errors.New("no identifier found for record")

// IdentifierError reports a record that cannot be identified. Raw holds the
// record's serialized XML for diagnostics.
type IdentifierError struct {
	Reason string
	Raw    string
}

func (e *IdentifierError) Error() string {
	msg := ErrNoIdentifier.Error()
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg + ": " + e.Raw
}

func (e *IdentifierError) Unwrap() error {
	return ErrNoIdentifier
}

// ResolveID derives the record identifier.
//
// An add-data@identifier set by the harvester is returned as is. Otherwise
// the did/unitid elements are scanned and the last one labeled
// technicalLabel supplies the id: its identifier attribute, or the text of
// the first unitid. The result is URL-encoded.
func ResolveID(doc *document.Node, technicalLabel string) (string, error) {
	if id, ok := doc.Child("add-data").Attr("identifier"); ok && strings.TrimSpace(id) != "" {
		return id, nil
	}

	unitids := doc.Child("did").ChildrenNamed("unitid")
	if len(unitids) == 0 {
		return "", &IdentifierError{Reason: "no unitid", Raw: doc.OutputXML()}
	}

	var id string
	for _, u := range unitids {
		if u.AttrValue("label") != technicalLabel {
			continue
		}
		if v := u.AttrValue("identifier"); v != "" {
			id = v
		} else {
			id = strings.TrimSpace(unitids[0].InnerText())
		}
	}
	if id == "" {
		return "", &IdentifierError{Reason: "no unitid labeled " + technicalLabel, Raw: doc.OutputXML()}
	}
	return url.QueryEscape(id), nil
}

// analogID returns the archive reference code of the unitid labeled with the
// analog marker, without its leading "<archive>/" part.
func (m *Mapper) analogID(doc *document.Node) string {
	var analog string
	for _, u := range doc.Child("did").ChildrenNamed("unitid") {
		if u.AttrValue("label") != m.markers.AnalogLabel {
			continue
		}
		s := u.Text()
		if i := strings.Index(s, "/"); i > 0 {
			s = s[i+1:]
		}
		analog = strings.TrimSpace(s)
	}
	return analog
}
