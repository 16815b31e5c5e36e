package documents

import (
	"context"
	"errors"
	"os"
	"testing"

	"billscan/pkg/models"
	"billscan/pkg/services/completion"
	"billscan/pkg/services/pdftext"
	"billscan/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestAsk(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.CreateDocument(ctx, &models.Document{ID: "d1", Text: "Rent is 900 dollars."}))

	fc := &fakeCompleter{reply: "900 dollars"}
	svc := NewService(st, fc, zap.NewNop())

	ans, err := svc.Ask(ctx, "d1", "  How much is rent? ")
	require.NoError(t, err)
	assert.Equal(t, "900 dollars", ans.Response)
	assert.Equal(t, "How much is rent?", ans.Prompt)
	assert.Equal(t, "d1", ans.DocumentID)
	require.Len(t, fc.prompts, 1)
	assert.Contains(t, fc.prompts[0], "Rent is 900 dollars.")
}

func TestAskErrors(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.CreateDocument(ctx, &models.Document{ID: "d1", Text: "x"}))

	svc := NewService(st, &fakeCompleter{err: errors.New("quota")}, nil)

	_, err := svc.Ask(ctx, "d1", "   ")
	assert.ErrorIs(t, err, completion.ErrEmptyPrompt)

	_, err = svc.Ask(ctx, "nope", "q")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Ask(ctx, "d1", "q")
	assert.ErrorContains(t, err, "quota")

	_, err = NewService(st, nil, nil).AskText(ctx, "x", "q")
	assert.Error(t, err)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), &fakeCompleter{}, nil)
	_, err := svc.Upload(context.Background(), "notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestUploadThenAsk(t *testing.T) {
	data, err := os.ReadFile("../pdftext/testdata/receipt.pdf")
	require.NoError(t, err)

	ctx := context.Background()
	fc := &fakeCompleter{reply: "42.50"}
	svc := NewService(store.NewMemoryStore(), fc, zap.NewNop())

	doc, err := svc.Upload(ctx, "receipt.pdf", data)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "receipt.pdf", doc.Filename)
	assert.Equal(t, 2, doc.Pages)
	assert.Contains(t, doc.Text, "TOTAL 42.50")

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Text, got.Text)
	assert.Equal(t, 2, got.Pages)

	ans, err := svc.Ask(ctx, doc.ID, "What is the total?")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, ans.DocumentID)
	assert.Equal(t, "42.50", ans.Response)
	require.Len(t, fc.prompts, 1)
	assert.Contains(t, fc.prompts[0], "Corner Grocery")
	assert.Contains(t, fc.prompts[0], "Thank you for shopping")
	assert.Contains(t, fc.prompts[0], "Question: What is the total?")
}

func TestUploadScannedPDFWithoutText(t *testing.T) {
	data, err := os.ReadFile("../pdftext/testdata/blank.pdf")
	require.NoError(t, err)

	st := store.NewMemoryStore()
	_, err = NewService(st, &fakeCompleter{}, nil).Upload(context.Background(), "scan.pdf", data)
	assert.ErrorIs(t, err, pdftext.ErrNoText)
}
