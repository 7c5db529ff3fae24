package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/vho0811/blogpost-backend/errs"
)

type fakeGenerator struct {
	outputs []string
	errs    []error
	calls   int
}

func (g *fakeGenerator) GenerateDesign(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.outputs) {
		return g.outputs[i], nil
	}
	return "", errors.New("no scripted response")
}

type fakeStore struct {
	applied  int
	html     string
	settings datatypes.JSON
	err      error
}

func (s *fakeStore) ApplyDesign(id uuid.UUID, html string, settings datatypes.JSON, at time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.applied++
	s.html = html
	s.settings = settings
	return nil
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	return apiErr.StatusCode
}

func TestRedesignStripsConversationalWrapper(t *testing.T) {
	document := RenderInitialDocument()
	generator := &fakeGenerator{outputs: []string{"Sure, here is the redesign:\n\n" + document + "\n\nEnjoy!"}}
	store := &fakeStore{}
	bus := NewEventBus()
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	designer := NewDesigner(generator, store, bus, time.Second)
	result, err := designer.Redesign(context.Background(), uuid.New(), document, "brutalist concrete look")

	require.NoError(t, err)
	assert.Equal(t, document, result.Document)
	assert.Equal(t, PromptEnhanced, result.Outcome)
	assert.Equal(t, 1, result.AttemptsUsed)
	assert.Equal(t, 1, store.applied)
	assert.Equal(t, document, store.html)
	assert.Contains(t, string(store.settings), "brutalist concrete look")

	event := <-events
	assert.Equal(t, EventDesignCompleted, event.Type)
}

func TestRedesignRejectsOutputWithoutDocument(t *testing.T) {
	generator := &fakeGenerator{outputs: []string{"I cannot produce HTML right now."}}
	store := &fakeStore{}

	designer := NewDesigner(generator, store, nil, time.Second)
	_, err := designer.Redesign(context.Background(), uuid.New(), RenderInitialDocument(), "anything")

	assert.Equal(t, http.StatusBadGateway, statusCode(t, err))
	assert.Zero(t, store.applied, "stored document must stay untouched")
}

func TestRedesignRejectsOutputMissingTokens(t *testing.T) {
	mangled := strings.ReplaceAll(RenderInitialDocument(), TokenTitle, "My Literal Title")
	generator := &fakeGenerator{outputs: []string{mangled}}
	store := &fakeStore{}

	designer := NewDesigner(generator, store, nil, time.Second)
	_, err := designer.Redesign(context.Background(), uuid.New(), RenderInitialDocument(), "anything")

	assert.Equal(t, http.StatusBadGateway, statusCode(t, err))
	assert.Contains(t, err.Error(), TokenTitle)
	assert.Zero(t, store.applied)
}

func TestRedesignRetriesOnceAfterFailure(t *testing.T) {
	document := RenderInitialDocument()
	generator := &fakeGenerator{
		errs:    []error{errors.New("upstream hiccup"), nil},
		outputs: []string{"", document},
	}
	store := &fakeStore{}

	designer := NewDesigner(generator, store, nil, time.Second)
	result, err := designer.Redesign(context.Background(), uuid.New(), document, "anything")

	require.NoError(t, err)
	assert.Equal(t, 2, result.AttemptsUsed)
	assert.Equal(t, 2, generator.calls)
	assert.Equal(t, 1, store.applied)
}

func TestRedesignGivesUpAfterSecondFailure(t *testing.T) {
	generator := &fakeGenerator{errs: []error{errors.New("down"), errors.New("still down")}}
	store := &fakeStore{}

	designer := NewDesigner(generator, store, nil, time.Second)
	_, err := designer.Redesign(context.Background(), uuid.New(), RenderInitialDocument(), "anything")

	assert.Equal(t, http.StatusBadGateway, statusCode(t, err))
	assert.Equal(t, 2, generator.calls)
	assert.Zero(t, store.applied)
}

func TestRedesignRefusesEmptyStoredDocument(t *testing.T) {
	generator := &fakeGenerator{}
	store := &fakeStore{}

	designer := NewDesigner(generator, store, nil, time.Second)
	_, err := designer.Redesign(context.Background(), uuid.New(), "   ", "anything")

	assert.Equal(t, http.StatusInternalServerError, statusCode(t, err))
	assert.Zero(t, generator.calls, "broken data never reaches the generator")
}

func TestRedesignRefusesStoredDocumentMissingTokens(t *testing.T) {
	broken := strings.ReplaceAll(RenderInitialDocument(), TokenContent, "")
	generator := &fakeGenerator{}
	store := &fakeStore{}

	designer := NewDesigner(generator, store, nil, time.Second)
	_, err := designer.Redesign(context.Background(), uuid.New(), broken, "anything")

	assert.Equal(t, http.StatusInternalServerError, statusCode(t, err))
	assert.Zero(t, generator.calls)
}

func TestExtractHTMLDocument(t *testing.T) {
	document := "<!DOCTYPE html>\n<html><body>hi</body></html>"

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"bare document", document, document, true},
		{"wrapped document", "preamble " + document + " postscript", document, true},
		{"case insensitive", strings.ToUpper(document), strings.ToUpper(document), true},
		{"no doctype", "<html></html>", "", false},
		{"unterminated", "<!DOCTYPE html><html><body>", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractHTMLDocument(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
