package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lehigh-university-libraries/findingaid/ead3"
	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/record"
)

const (
	inputFormat   = "ead3"
	defaultOutput = "solrjson"
)

// unidentifiedResponse is the 422 body for a record without an identifier.
type unidentifiedResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Index  int    `json:"index"`
	Record string `json:"record"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.vocab.Fields())
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"output": s.formats.Serializers()})
}

// handleMap maps every record element of the posted EAD3 document and
// returns the records in the requested output format.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = defaultOutput
	}
	serializer, err := s.formats.GetSerializer(name)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	parser, err := s.formats.GetParser(inputFormat)
	if err != nil {
		s.log.Error("input format not registered", "format", inputFormat, "error", err)
		jsonError(w, "input format unavailable", http.StatusInternalServerError)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	docs, err := parser.Parse(body, &format.ParseOptions{
		RecordElements: s.profile.GetRecordElements(),
		SourceName:     "request body",
	})
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(docs) == 0 {
		jsonError(w, "no record elements found", http.StatusBadRequest)
		return
	}

	records := make([]*record.Record, 0, len(docs))
	for i, doc := range docs {
		rec, err := s.mapper.Map(doc)
		if err != nil {
			var idErr *ead3.IdentifierError
			if errors.As(err, &idErr) {
				s.metrics.RecordsTotal.WithLabelValues("unidentified").Inc()
				s.log.Warn("record cannot be identified", "index", i, "reason", idErr.Reason)
				writeJSON(w, http.StatusUnprocessableEntity, unidentifiedResponse{
					Error:  ead3.ErrNoIdentifier.Error(),
					Reason: idErr.Reason,
					Index:  i,
					Record: idErr.Raw,
				})
				return
			}
			s.log.Error("mapping failed", "index", i, "error", err)
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		records = append(records, rec)
	}
	s.metrics.RecordsTotal.WithLabelValues("mapped").Add(float64(len(records)))

	opts := format.NewSerializeOptions()
	opts.Profile = s.profile
	opts.Vocabulary = s.vocab
	opts.MultiValueSeparator = ""
	opts.Delimiter = 0
	opts.Pretty, _ = strconv.ParseBool(r.URL.Query().Get("pretty"))

	var buf bytes.Buffer
	if err := serializer.Serialize(&buf, records, opts); err != nil {
		s.log.Error("serializing records", "format", name, "error", err)
		jsonError(w, "serializing records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", serializer.ContentType())
	w.Write(buf.Bytes())
}
