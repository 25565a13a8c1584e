package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/core/format"
	"github.com/baditaflorin/go_text_formatter/internal/handler"
)

// inProcess answers through the real handler without a socket.
type inProcess struct {
	h *handler.Handler
}

func (p inProcess) Format(_ context.Context, req domain.FormatRequest) (domain.FormatResult, error) {
	payload, err := json.Marshal(map[string]string{"text": req.Text, "format_type": req.FormatType})
	if err != nil {
		return domain.FormatResult{}, err
	}
	return p.h.Handle(payload).Result, nil
}

type broken struct{}

func (broken) Format(context.Context, domain.FormatRequest) (domain.FormatResult, error) {
	return domain.FormatResult{}, errors.New("connection refused")
}

func TestScenariosPassAgainstHandler(t *testing.T) {
	client := inProcess{h: handler.New(format.NewFormatter(normalizer.NewDefaultNormalizer()))}

	var out bytes.Buffer
	require.NoError(t, runScenarios(context.Background(), &out, client, scenarios))
	assert.Contains(t, out.String(), "6/6 scenarios passed")
	assert.Contains(t, out.String(), "✓ Formatted text: Hello world. Goodbye world.")
}

func TestScenariosReportFailures(t *testing.T) {
	var out bytes.Buffer
	err := runScenarios(context.Background(), &out, broken{}, scenarios[:2])

	require.Error(t, err)
	assert.Contains(t, out.String(), "0/2 scenarios passed")
	assert.Contains(t, out.String(), "connection refused")
}
