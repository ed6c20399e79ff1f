package api

import (
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smbtab/smbtab/pkg/codec"
	"github.com/smbtab/smbtab/pkg/smbios"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// readTable pulls the blob from the store and keeps the table gauges
// current.
func (s *Server) readTable() ([]byte, []codec.Record, error) {
	blob, err := s.store.Bytes()
	if err != nil {
		s.metrics.RecordTableRead(false)
		return nil, nil, err
	}

	records, err := codec.ParseTable(blob)
	if err != nil {
		s.metrics.RecordTableRead(false)
		return nil, nil, err
	}

	s.metrics.RecordTableRead(true)
	s.metrics.UpdateTableStats(len(records), len(blob))
	return blob, records, nil
}

// handleTable serves the raw flattened blob.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	blob, _, err := s.readTable()
	if err != nil {
		s.sugar.Errorw("table read failed", "err", err)
		sendError(w, "Failed to read table", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	_, records, err := s.readTable()
	if err != nil {
		s.sugar.Errorw("table read failed", "err", err)
		sendError(w, "Failed to read table", http.StatusInternalServerError)
		return
	}

	views := make([]RecordView, 0, len(records))
	for i := range records {
		views = append(views, recordView(&records[i]))
	}
	sendSuccess(w, views)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "handle")
	handle, err := strconv.ParseUint(param, 0, 16)
	if err != nil {
		sendError(w, "Invalid handle", http.StatusBadRequest)
		return
	}

	_, records, err := s.readTable()
	if err != nil {
		s.sugar.Errorw("table read failed", "err", err)
		sendError(w, "Failed to read table", http.StatusInternalServerError)
		return
	}

	for i := range records {
		if records[i].Handle == smbios.Handle(handle) {
			sendSuccess(w, recordView(&records[i]))
			return
		}
	}
	sendError(w, "Record not found", http.StatusNotFound)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	blob, records, err := s.readTable()
	if err != nil {
		s.sugar.Errorw("table read failed", "err", err)
		sendError(w, "Failed to read table", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, TableStats{Records: len(records), Bytes: len(blob)})
}

func recordView(rec *codec.Record) RecordView {
	return RecordView{
		Type:      rec.Type,
		Handle:    uint16(rec.Handle),
		Length:    uint8(len(rec.Formatted)),
		Size:      rec.Size(),
		Formatted: hex.EncodeToString(rec.Formatted),
		Strings:   rec.Strings,
	}
}
