package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/search"
	"github.com/vedur-cli/vedur/internal/testutil"
)

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{" y ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := promptYesNo(strings.NewReader(tt.input), &out, "Allow? ")
		testutil.AssertEqual(t, got, tt.want)
		testutil.AssertEqual(t, out.String(), "Allow? ")
	}
}

func TestPrintState_Text(t *testing.T) {
	oldColor := flagColor
	defer func() { flagColor = oldColor }()
	flagColor = "never"

	var buf bytes.Buffer
	state := search.Results(models.DefaultLocations()[0], []models.ForecastEntry{
		{Time: "2024-01-01T09:00", Temperature: 1.24, Precipitation: 0},
	})
	testutil.AssertNil(t, printState(&buf, state))
	testutil.AssertContains(t, buf.String(), "Reykjavík")
	testutil.AssertContains(t, buf.String(), "09:00")
}

func TestPrintState_JSON(t *testing.T) {
	oldJSON := flagJSON
	defer func() { flagJSON = oldJSON }()
	flagJSON = true

	var buf bytes.Buffer
	testutil.AssertNil(t, printState(&buf, search.Failed(search.MsgNoData)))
	testutil.AssertContains(t, buf.String(), `"kind": "error"`)
	testutil.AssertContains(t, buf.String(), search.MsgNoData)
}
