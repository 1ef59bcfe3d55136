package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake repository
// ──────────────────────────────────────────────────────────────────────────────

type fakeSampleRequestRepo struct {
	headers  map[string]*entity.SampleRequest
	items    map[string][]*entity.SampleRequestItem
	itemsErr error
}

func newFakeSampleRequestRepo() *fakeSampleRequestRepo {
	return &fakeSampleRequestRepo{
		headers: make(map[string]*entity.SampleRequest),
		items:   make(map[string][]*entity.SampleRequestItem),
	}
}

func (f *fakeSampleRequestRepo) CreateHeader(r *entity.SampleRequest) error {
	f.headers[r.ID] = r
	return nil
}

func (f *fakeSampleRequestRepo) CreateItems(items []*entity.SampleRequestItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	for _, item := range items {
		f.items[item.RequestID] = append(f.items[item.RequestID], item)
	}
	return nil
}

func (f *fakeSampleRequestRepo) GetByID(id string) (*entity.SampleRequest, error) {
	return f.headers[id], nil
}

func (f *fakeSampleRequestRepo) ListItems(requestID string) ([]*entity.SampleRequestItem, error) {
	return f.items[requestID], nil
}

func (f *fakeSampleRequestRepo) List(limit, offset int) ([]*entity.SampleRequest, error) {
	var out []*entity.SampleRequest
	for _, r := range f.headers {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSampleRequestRepo) ListByFirma(firmaID string, limit, offset int) ([]*entity.SampleRequest, error) {
	var out []*entity.SampleRequest
	for _, r := range f.headers {
		if r.FirmaID == firmaID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSampleRequestRepo) UpdateStatus(id, status, note string) error {
	r, ok := f.headers[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	r.Note = note
	return nil
}

func validCreateRequest() dto.CreateSampleRequestRequest {
	return dto.CreateSampleRequestRequest{
		FirmaID: "firma-1",
		Items: []dto.RequestItem{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-2", Quantity: 1},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: validation and the two-phase write
// ──────────────────────────────────────────────────────────────────────────────

func TestSampleRequestCreate_Complete(t *testing.T) {
	repo := newFakeSampleRequestRepo()
	uc := usecase.NewSampleRequestUseCase(repo)

	out, err := uc.Create(validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "complete", out.Phase)
	assert.NotEmpty(t, out.ID)

	header := repo.headers[out.ID]
	require.NotNil(t, header)
	assert.Equal(t, workflow.StatusPending, header.Status, "new requests start pending")
	assert.Len(t, repo.items[out.ID], 2)
}

func TestSampleRequestCreate_RejectsEmptyItems(t *testing.T) {
	uc := usecase.NewSampleRequestUseCase(newFakeSampleRequestRepo())

	in := validCreateRequest()
	in.Items = nil
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

func TestSampleRequestCreate_RejectsMissingOrigin(t *testing.T) {
	uc := usecase.NewSampleRequestUseCase(newFakeSampleRequestRepo())

	in := validCreateRequest()
	in.FirmaID = ""
	in.LeadID = ""
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrMissingOrigin)
}

func TestSampleRequestCreate_LeadOriginSuffices(t *testing.T) {
	uc := usecase.NewSampleRequestUseCase(newFakeSampleRequestRepo())

	in := validCreateRequest()
	in.FirmaID = ""
	in.LeadID = "lead-7"
	out, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "complete", out.Phase)
}

func TestSampleRequestCreate_RejectsBadItems(t *testing.T) {
	uc := usecase.NewSampleRequestUseCase(newFakeSampleRequestRepo())

	in := validCreateRequest()
	in.Items[1].Quantity = 0
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// When item insertion fails the header stays committed and the caller learns
// both the error and how far the write got.
func TestSampleRequestCreate_ItemFailureKeepsHeader(t *testing.T) {
	repo := newFakeSampleRequestRepo()
	repo.itemsErr = errors.New("relation sample_request_items is gone")
	uc := usecase.NewSampleRequestUseCase(repo)

	out, err := uc.Create(validCreateRequest())
	require.Error(t, err)
	require.NotNil(t, out, "the partial result must be reported alongside the error")
	assert.Equal(t, "header", out.Phase)

	assert.NotNil(t, repo.headers[out.ID], "the header survives the item failure")
	assert.Empty(t, repo.items[out.ID])
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition: machine enforcement and note accumulation
// ──────────────────────────────────────────────────────────────────────────────

func TestSampleRequestTransition_AppendsReasons(t *testing.T) {
	repo := newFakeSampleRequestRepo()
	uc := usecase.NewSampleRequestUseCase(repo)

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	out, err := uc.Transition(created.ID, dto.TransitionRequest{
		Status: workflow.StatusContacted,
		Reason: "called the buyer",
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusContacted, out.Status)
	assert.Equal(t, "called the buyer", out.Note)

	out, err = uc.Transition(created.ID, dto.TransitionRequest{
		Status: workflow.StatusCancelled,
		Reason: "buyer went silent",
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCancelled, out.Status)
	assert.Contains(t, out.Note, "called the buyer", "prior history must survive")
	assert.Contains(t, out.Note, workflow.NoteDelimiter)
	assert.Contains(t, out.Note, "buyer went silent")
}

func TestSampleRequestTransition_RejectsInvalid(t *testing.T) {
	repo := newFakeSampleRequestRepo()
	uc := usecase.NewSampleRequestUseCase(repo)

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)
	_, err = uc.Transition(created.ID, dto.TransitionRequest{Status: workflow.StatusContacted})
	require.NoError(t, err)
	_, err = uc.Transition(created.ID, dto.TransitionRequest{Status: workflow.StatusShipped})
	require.NoError(t, err)

	// Shipped is terminal for sample requests.
	_, err = uc.Transition(created.ID, dto.TransitionRequest{Status: workflow.StatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSampleRequestTransition_SameStatusIsNoOp(t *testing.T) {
	repo := newFakeSampleRequestRepo()
	uc := usecase.NewSampleRequestUseCase(repo)

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	out, err := uc.Transition(created.ID, dto.TransitionRequest{Status: workflow.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, out.Status)
	assert.Empty(t, out.Note, "a no-op must not touch the note")
}

func TestSampleRequestTransition_UnknownIDIsNil(t *testing.T) {
	uc := usecase.NewSampleRequestUseCase(newFakeSampleRequestRepo())
	out, err := uc.Transition("nope", dto.TransitionRequest{Status: workflow.StatusContacted})
	require.NoError(t, err)
	assert.Nil(t, out, "missing rows surface as nil, the handler maps it to 404")
}
