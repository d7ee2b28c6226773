package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/store"
	"github.com/mmdatafocus/intake_backend/utils"
)

func TestOpenScreening_LoadsEverySlice(t *testing.T) {
	api := &fakeAPI{screening: sampleScreening(), people: []models.RelatedPerson{{ID: "v"}}}
	svc := NewService(api, WithLogger(quietLogger()), WithStaleGuard(true))
	st := store.New()

	if err := svc.OpenScreening(context.Background(), st, "42"); err != nil {
		t.Fatalf("OpenScreening error: %v", err)
	}
	calls := api.Calls()
	if len(calls) != 5 || calls[0] != "GetScreening" {
		t.Fatalf("unexpected calls %v", calls)
	}
	state := st.State()
	if state.Screening.ID != "42" || len(state.Relationships.People) != 1 || len(state.SystemCodes) != 1 {
		t.Fatalf("slices not loaded: %+v", state)
	}
	if state.History.FetchStatus != models.FetchStatusFetched {
		t.Fatalf("history not fetched")
	}
}

func TestOpenScreening_FailedFetchStopsThere(t *testing.T) {
	api := &fakeAPI{failScreening: serverError(`{"error":"missing"}`)}
	svc := NewService(api, WithLogger(quietLogger()))
	st := store.New()

	if err := svc.OpenScreening(context.Background(), st, "42"); err == nil {
		t.Fatalf("expected error")
	}
	if calls := api.Calls(); len(calls) != 1 {
		t.Fatalf("expected only the screening fetch, got %v", calls)
	}
	if _, ok := st.State().Errors[models.OperationFetch]; !ok {
		t.Fatalf("fetch failure not recorded")
	}
}

func TestSaveCard_SendsOnlyThatCardsEdits(t *testing.T) {
	api := &fakeAPI{screening: sampleScreening()}
	svc := NewService(api, WithLogger(quietLogger()))
	st := openedStore(t, api, svc)

	st.Dispatch(messages.FormFieldSet{Form: models.CardScreeningInformation, Field: "assignee", Value: str("Bea")})
	st.Dispatch(messages.FormFieldSet{Form: models.CardNarrative, Field: "report_narrative", Value: str("unsaved narrative")})

	if err := svc.SaveCard(context.Background(), st, models.CardScreeningInformation); err != nil {
		t.Fatalf("SaveCard error: %v", err)
	}
	if len(api.updated) != 1 {
		t.Fatalf("expected 1 update, got %d", len(api.updated))
	}
	sent := api.updated[0]
	if *sent.Assignee != "Bea" {
		t.Fatalf("card edit not sent")
	}
	if *sent.ReportNarrative != "persisted narrative" {
		t.Fatalf("edit of another card leaked into the save: %q", *sent.ReportNarrative)
	}

	state := st.State()
	if *state.Screening.Assignee != "Bea" {
		t.Fatalf("save response not merged")
	}
	if v := state.Forms[models.CardNarrative]["report_narrative"].Value; *v != "unsaved narrative" {
		t.Fatalf("unsaved narrative edit was lost")
	}
	for name, f := range state.Forms[models.CardScreeningInformation] {
		if !f.Touched {
			t.Fatalf("%s not touched by save", name)
		}
	}
}

func TestSaveCard_AllegationsSendsDraftAndResets(t *testing.T) {
	api := &fakeAPI{screening: sampleScreening()}
	svc := NewService(api, WithLogger(quietLogger()))
	st := openedStore(t, api, svc)

	st.Dispatch(messages.AllegationTypesSet{VictimID: "v", PerpetratorID: "p", Types: []string{"General neglect"}})
	if err := svc.SaveCard(context.Background(), st, models.CardAllegations); err != nil {
		t.Fatalf("SaveCard error: %v", err)
	}
	sent := api.updated[0]
	if len(sent.Allegations) != 1 || sent.Allegations[0].VictimPersonID != "v" || sent.Allegations[0].ScreeningID != "42" {
		t.Fatalf("unexpected allegations sent %+v", sent.Allegations)
	}

	state := st.State()
	if len(state.Screening.Allegations) != 1 || len(state.AllegationsForm) != 1 {
		t.Fatalf("draft not rebuilt from the saved allegations: %+v", state.AllegationsForm)
	}
}

func TestSaveCard_FailureKeepsEdits(t *testing.T) {
	api := &fakeAPI{screening: sampleScreening()}
	svc := NewService(api, WithLogger(quietLogger()))
	st := openedStore(t, api, svc)
	api.failUpdate = errTransport

	st.Dispatch(messages.FormFieldSet{Form: models.CardNarrative, Field: "report_narrative", Value: str("mine")})
	if err := svc.SaveCard(context.Background(), st, models.CardNarrative); err == nil {
		t.Fatalf("expected error")
	}
	state := st.State()
	if *state.Screening.ReportNarrative != "persisted narrative" {
		t.Fatalf("failed save changed the screening")
	}
	if v := state.Forms[models.CardNarrative]["report_narrative"].Value; *v != "mine" {
		t.Fatalf("failed save lost the edit")
	}
	if notice := state.Errors[models.OperationSave]; notice.Status != 500 {
		t.Fatalf("expected a 500 notice for a non-FERB error, got %+v", notice)
	}
}

func TestSubmitScreening_MakesScreeningReadOnly(t *testing.T) {
	api := &fakeAPI{screening: sampleScreening()}
	svc := NewService(api, WithLogger(quietLogger()))
	st := openedStore(t, api, svc)

	if err := svc.SubmitScreening(context.Background(), st); err != nil {
		t.Fatalf("SubmitScreening error: %v", err)
	}
	if !st.State().ReadOnly() {
		t.Fatalf("submitted screening should be read-only")
	}
	if err := svc.SaveCard(context.Background(), st, models.CardNarrative); !errors.Is(err, utils.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := svc.SubmitScreening(context.Background(), store.New()); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("submitting an empty session should fail with not found, got %v", err)
	}
}

func TestCreateScreening(t *testing.T) {
	api := &fakeAPI{screening: models.ScreeningPayload{ID: "7"}}
	audit := &fakeAudit{}
	svc := NewService(api, WithAudit(audit), WithLogger(quietLogger()))
	st := store.New()

	id, err := svc.CreateScreening(context.Background(), st)
	if err != nil || id != "7" {
		t.Fatalf("unexpected create result %q %v", id, err)
	}
	if st.State().Screening.ID != "7" {
		t.Fatalf("created screening not loaded")
	}
	if len(audit.entries) != 1 || audit.entries[0].ActionType != models.AuditActionCreate {
		t.Fatalf("create not audited: %+v", audit.entries)
	}
}
