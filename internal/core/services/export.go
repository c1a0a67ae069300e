package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService packages a source's keyword summaries as cross-linked Markdown.
type ExportService struct {
	store     driven.KnowledgeStore
	summaries driving.SummaryService
	now       func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(store driven.KnowledgeStore, summaries driving.SummaryService) *ExportService {
	return &ExportService{store: store, summaries: summaries, now: time.Now}
}

// Export returns a ZIP with one Markdown file per keyword. Mentions of the
// source's other keywords inside each summary are wrapped as [[Keyword]].
func (s *ExportService) Export(ctx context.Context, sourceID string) (*domain.Archive, error) {
	keywords, err := s.store.KeywordStore().GetKeywords(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get keywords: %w", err)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: no keywords for source %s", domain.ErrNotFound, sourceID)
	}

	logger.Section("Export " + sourceID)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := newEntryNames()
	modified := s.now()

	for i := range keywords {
		kw := &keywords[i]
		summary, err := s.summaries.GetSummary(ctx, sourceID, kw.ID)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("summarise %q: %w", kw.Keyword, err)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     names.next(kw.Keyword),
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("add zip entry: %w", err)
		}
		if _, err := w.Write([]byte(LinkKeywords(summary.Summary, kw.Keyword, keywords))); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish zip: %w", err)
	}

	logger.Info("exported %d summaries for source %s", len(keywords), sourceID)
	return &domain.Archive{
		Filename: fmt.Sprintf("source_%s_summaries.zip", sourceID),
		Data:     buf.Bytes(),
		Entries:  len(keywords),
	}, nil
}

// LinkKeywords wraps every mention of a keyword other than self in text as
// [[Keyword]], using the keyword's stored surface form.
//
// Matching ignores ASCII case and runs in a single left-to-right pass that
// tries longer keywords first, so inserted brackets are never re-matched and
// "quantum physics" wins over "physics".
func LinkKeywords(text, self string, keywords []domain.Keyword) string {
	targets := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for i := range keywords {
		surface := keywords[i].Keyword
		folded := strings.ToLower(surface)
		if surface == "" || strings.EqualFold(surface, self) || seen[folded] {
			continue
		}
		seen[folded] = true
		targets = append(targets, surface)
	}
	if len(targets) == 0 {
		return text
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return len(targets[i]) > len(targets[j])
	})

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		matched := ""
		for _, t := range targets {
			if len(t) <= len(text)-i && strings.EqualFold(text[i:i+len(t)], t) {
				matched = t
				break
			}
		}
		if matched == "" {
			b.WriteByte(text[i])
			i++
			continue
		}
		b.WriteString("[[")
		b.WriteString(matched)
		b.WriteString("]]")
		i += len(matched)
	}
	return b.String()
}

// entryNames hands out unique, path-safe ZIP entry names.
type entryNames struct {
	used map[string]bool
}

func newEntryNames() *entryNames {
	return &entryNames{used: make(map[string]bool)}
}

var entryNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

func (n *entryNames) next(keyword string) string {
	base := strings.TrimSpace(entryNameReplacer.Replace(keyword))
	if base == "" || base == "." || base == ".." {
		base = "keyword"
	}

	name := base + ".md"
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s-%d.md", base, i)
	}
	n.used[name] = true
	return name
}
