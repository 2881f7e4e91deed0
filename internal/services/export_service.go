package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mholt/archives"
	"github.com/pkg/errors"

	"timetracker/internal/models"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeGzip = "application/gzip"
)

// Archiver keeps a copy of an export somewhere durable.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) error
}

// Export is a rendered entry export.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a user's entries as CSV.
type ExportService struct {
	entries  *EntryService
	archiver Archiver
	now      func() time.Time
}

// NewExportService creates an ExportService. archiver may be nil, in which
// case exports are not archived.
func NewExportService(entries *EntryService, archiver Archiver) *ExportService {
	return &ExportService{
		entries:  entries,
		archiver: archiver,
		now:      time.Now,
	}
}

var exportHeader = []string{"id", "start", "stop", "finished", "project", "description"}

// ExportEntries renders the entries authored by authorID, gzip-compressed when compress is set.
func (s *ExportService) ExportEntries(ctx context.Context, authorID uuid.UUID, compress bool) (*Export, error) {
	entries, err := s.entries.ListEntries(ctx, authorID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if compress {
		gz, err := archives.Gz{}.OpenWriter(&buf)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open gzip writer")
		}
		if err := writeEntriesCSV(gz, entries); err != nil {
			gz.Close()
			return nil, err
		}
		if err := gz.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to finish gzip stream")
		}
	} else if err := writeEntriesCSV(&buf, entries); err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    fmt.Sprintf("entries-%s.csv", s.now().UTC().Format("20060102T150405Z")),
		ContentType: ContentTypeCSV,
		Data:        buf.Bytes(),
	}
	if compress {
		export.Filename += ".gz"
		export.ContentType = ContentTypeGzip
	}

	if s.archiver != nil {
		key := fmt.Sprintf("exports/%s/%s", authorID, export.Filename)
		if err := s.archiver.Archive(ctx, key, export.Data, export.ContentType); err != nil {
			log.Printf("Failed to archive export: Key=%s, Error=%v", key, err)
		} else {
			log.Printf("Archived export: Key=%s, Size=%d bytes, Entries=%d", key, len(export.Data), len(entries))
		}
	}
	return export, nil
}

func writeEntriesCSV(w io.Writer, entries []models.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	for _, e := range entries {
		stop := ""
		if e.Stop != nil {
			stop = e.Stop.UTC().Format(time.RFC3339)
		}
		project := ""
		if e.Project != nil {
			project = e.Project.Name
		}
		record := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Start.UTC().Format(time.RFC3339),
			stop,
			strconv.FormatBool(e.IsFinished()),
			project,
			e.Description,
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write entry %d", e.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}
