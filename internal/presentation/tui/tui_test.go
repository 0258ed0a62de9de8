package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() []PlanEntry {
	tpl := domain.NewCommandTemplate("./parallel")
	var entries []PlanEntry
	for _, tr := range domain.DefaultGrid().Trials()[:3] {
		entries = append(entries, PlanEntry{Trial: tr, Invocation: tpl.Build(tr.Params)})
	}
	return entries
}

func TestWritePlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, samplePlan()))

	assert.Equal(t, []string{
		"./parallel -t 1 -c 0 -s 42",
		"./parallel -t 2 -c 0 -s 42",
		"./parallel -t 4 -c 0 -s 42",
	}, strings.Split(strings.TrimSpace(buf.String()), "\n"))
}

func TestPlanMarkdown(t *testing.T) {
	md := PlanMarkdown("./parallel", samplePlan())
	assert.Contains(t, md, "3 trials")
	assert.Contains(t, md, "| 2 | 0 | 1 | 2 | 0 | 42 | `./parallel -t 2 -c 0 -s 42` |")
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer()("# Sweep plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Sweep plan")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "./parallel", 195)
	assert.Contains(t, buf.String(), "./parallel")
	assert.Contains(t, buf.String(), "195 trials")
}
