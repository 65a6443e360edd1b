// Package solverlog extracts ranked combination records from the report text
// written by the module-combination solver. The report is human-readable,
// line-oriented text, not a machine format, so extraction is prefix-marker
// based and deliberately fail-closed: any structural anomaly yields an empty
// result rather than a partial one.
package solverlog

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// Report line markers. These are prefix matches against stripped lines and
// must track the solver's report writer exactly.
const (
	titlePrefix   = "模组搭配优化 -"
	statsPrefix   = "统计信息"
	totalPrefix   = "总属性值"
	powerPrefix   = "战斗力"
	modulesPrefix = "模组列表"
	attrsPrefix   = "属性分布"

	bannerMinEquals = 50
)

// blockHeaderPattern matches a combination block header and captures the rank.
var blockHeaderPattern = regexp.MustCompile(`=== 第(\d+)名搭配 ===`)

var bannerPrefix = strings.Repeat("=", bannerMinEquals)

// Parser extracts combination records from solver report text.
//
// Parse never returns an error: malformed input degrades to an empty slice.
// Callers that need to distinguish "no results" from "unparseable log" cannot
// do so through this API; that matches the report consumer this replaces.
type Parser struct {
	logger utils.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger for the parser.
func WithLogger(logger utils.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger: &utils.NullLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads path and parses its contents. Unreadable files yield an
// empty slice; bytes that are not valid UTF-8 are dropped rather than
// failing the whole parse.
func (p *Parser) ParseFile(path string) []model.CombinationRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("cannot read solver log %s: %v", path, err)
		return []model.CombinationRecord{}
	}
	return p.Parse(strings.ToValidUTF8(string(data), ""))
}

// Parse extracts combination records from text in source-encounter order.
// The result is never nil. Ranks are preserved exactly as found: duplicates
// and gaps are not repaired, and records are not re-sorted by rank.
func (p *Parser) Parse(text string) []model.CombinationRecord {
	records := []model.CombinationRecord{}

	filtered := preFilter(text)

	matches := blockHeaderPattern.FindAllStringSubmatchIndex(filtered, -1)
	for i, m := range matches {
		rank, err := strconv.Atoi(filtered[m[2]:m[3]])
		if err != nil {
			// \d+ only overflows here; treat it like any other anomaly.
			p.logger.Warn("unparseable rank %q in solver log", filtered[m[2]:m[3]])
			return []model.CombinationRecord{}
		}

		end := len(filtered)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		record := parseBlock(filtered[m[1]:end])
		record.Rank = rank
		records = append(records, record)
	}

	p.logger.Debug("parsed %d combination blocks", len(records))
	return records
}

// preFilter strips and rejoins the report lines, dropping banners, the
// report title, and blank lines. Everything from the statistics marker on is
// discarded, including any further combination blocks.
func preFilter(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, bannerPrefix) || strings.HasPrefix(stripped, titlePrefix) {
			continue
		}
		if strings.HasPrefix(stripped, statsPrefix) {
			break
		}
		if stripped != "" {
			kept = append(kept, stripped)
		}
	}
	return strings.Join(kept, "\n")
}

// parseBlock scans one block's lines with a small state machine. The module
// list runs until a line starting with the attribute-distribution marker,
// which is then re-examined rather than consumed; the attribute section is
// terminal and swallows every remaining line, markers included.
func parseBlock(block string) model.CombinationRecord {
	record := model.CombinationRecord{
		Modules:  []string{},
		AttrDist: []string{},
	}

	var lines []string
	for _, l := range strings.Split(block, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, totalPrefix):
			record.TotalLine = line
		case strings.HasPrefix(line, powerPrefix):
			record.PowerLine = line
		case strings.HasPrefix(line, modulesPrefix):
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], attrsPrefix) {
				record.Modules = append(record.Modules, strings.TrimSpace(lines[i]))
				i++
			}
			// Re-examine the terminating line on the next pass.
			continue
		case strings.HasPrefix(line, attrsPrefix):
			i++
			for i < len(lines) {
				record.AttrDist = append(record.AttrDist, strings.TrimSpace(lines[i]))
				i++
			}
			return record
		}
		i++
	}
	return record
}
