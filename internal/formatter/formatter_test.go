package formatter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// captureLogger records formatted Info lines.
type captureLogger struct {
	utils.NullLogger
	lines []string
}

func (l *captureLogger) Info(msg string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(msg, args...))
}

func TestRegistry_DispatchByKind(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &CharStateFormatter{}, r.Get(model.RunKindDecode))
	assert.IsType(t, &CombinationFormatter{}, r.Get(model.RunKindParse))
	assert.IsType(t, &DefaultFormatter{}, r.Get(model.RunKind(99)))
}

func TestCharStateFormatter_Format(t *testing.T) {
	log := &captureLogger{}
	r := NewRegistry()

	r.Format(&Report{
		Kind:      model.RunKindDecode,
		InputFile: "char.bin",
		Format:    "binary_wrapper",
		State: &model.CharState{
			CharID: 10001,
			Name:   "开拓者",
			Level:  80,
			Mod: &model.ModState{
				ModInfos: []model.ModInfo{
					{ConfigID: 1001, Quality: 3, Parts: []model.ModPart{{Name: "智力加持", Value: 12}}},
				},
			},
		},
	}, log)

	require.NotEmpty(t, log.lines)
	assert.Contains(t, log.lines, "Name:    开拓者")
	assert.Contains(t, log.lines, "      智力加持 = 12")
}

func TestCharStateFormatter_Summary(t *testing.T) {
	f := &CharStateFormatter{}

	summary := f.FormatSummary(&Report{
		Kind:      model.RunKindDecode,
		InputFile: "char.bin",
		Format:    "json_direct",
		State:     &model.CharState{CharID: 7, Level: 12},
	})

	assert.Equal(t, "decode", summary["kind"])
	assert.Equal(t, int64(7), summary["char_id"])
	assert.Equal(t, 0, summary["mods"])
}

func TestCombinationFormatter_Format(t *testing.T) {
	log := &captureLogger{}
	f := &CombinationFormatter{}

	f.Format(&Report{
		Kind:      model.RunKindParse,
		InputFile: "solver.log",
		Records: []model.CombinationRecord{
			{
				Rank:      1,
				TotalLine: "总属性值: 120",
				PowerLine: "战斗力: 9999",
				Modules:   []string{"帽子A"},
				AttrDist:  []string{"智力加持: 12"},
			},
		},
	}, log)

	assert.Contains(t, log.lines, "=== 第1名搭配 ===")
	assert.Contains(t, log.lines, "总属性值: 120")
	assert.Contains(t, log.lines, "  帽子A")
	assert.Contains(t, log.lines, "属性分布:")
}

func TestCombinationFormatter_Summary(t *testing.T) {
	f := &CombinationFormatter{}

	summary := f.FormatSummary(&Report{
		Kind:      model.RunKindParse,
		InputFile: "solver.log",
		Records:   []model.CombinationRecord{{Rank: 1}, {Rank: 2}},
	})

	assert.Equal(t, "parse", summary["kind"])
	assert.Equal(t, 2, summary["count"])
}

func TestRegistry_NilReport(t *testing.T) {
	r := NewRegistry()

	r.Format(nil, &captureLogger{})
	assert.Nil(t, r.FormatSummary(nil))
}
