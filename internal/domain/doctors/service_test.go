package doctors

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[int64]Doctor
	next int64
	fail error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Doctor{}}
}

func (r *testRepo) Create(ctx context.Context, d Doctor) (int64, error) {
	if r.fail != nil {
		return 0, r.fail
	}
	r.next++
	d.ID = r.next
	r.byID[d.ID] = d
	return d.ID, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Doctor, error) {
	if r.fail != nil {
		return Doctor{}, r.fail
	}
	d, ok := r.byID[id]
	if !ok {
		return Doctor{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) List(ctx context.Context) ([]Doctor, error) {
	out := make([]Doctor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type recordedEvent struct {
	kind    string
	payload any
}

type testPublisher struct {
	events []recordedEvent
}

func (p *testPublisher) Publish(kind string, payload any) {
	p.events = append(p.events, recordedEvent{kind: kind, payload: payload})
}

// -------------------------
// Tests
// -------------------------

func TestCreate_TrimsAndPublishes(t *testing.T) {
	pub := &testPublisher{}
	svc := NewService(newTestRepo(), pub)

	d, err := svc.Create(context.Background(), CreateInput{
		FirstName:  "  Gregory ",
		Specialty:  "Diagnostics",
		HourlyRate: 250,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.ID != 1 || d.FirstName != "Gregory" {
		t.Fatalf("unexpected doctor: %+v", d)
	}

	if len(pub.events) != 1 || pub.events[0].kind != EventCreated {
		t.Fatalf("expected one %s event, got %+v", EventCreated, pub.events)
	}
	if got := pub.events[0].payload.(Doctor); got.ID != d.ID {
		t.Fatalf("event payload mismatch: %+v", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	long := strings.Repeat("x", MaxNameLen+1)

	cases := []CreateInput{
		{FirstName: "", Specialty: "Cardiology"},
		{FirstName: "Ana", Specialty: "   "},
		{FirstName: long, Specialty: "Cardiology"},
		{FirstName: "Ana", Specialty: long},
		{FirstName: "Ana", Specialty: "Cardiology", HourlyRate: -0.01},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}

	// 50 caracteres exactos (multibyte) es válido.
	if _, err := svc.Create(context.Background(), CreateInput{FirstName: strings.Repeat("ñ", MaxNameLen), Specialty: "X"}); err != nil {
		t.Fatalf("expected 50 runes to be valid: %v", err)
	}
}

func TestChoicesAndExists(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{FirstName: "Gregory", Specialty: "Diagnostics"})
	_, _ = svc.Create(ctx, CreateInput{FirstName: "Lisa", Specialty: "Endocrinology"})

	choices, err := svc.Choices(ctx)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if len(choices) != 2 || choices[1].Label != "Dr. Lisa - Endocrinology" {
		t.Fatalf("unexpected choices: %+v", choices)
	}

	if ok, err := svc.Exists(ctx, 2); err != nil || !ok {
		t.Fatalf("expected doctor 2 to exist (ok=%v err=%v)", ok, err)
	}
	if ok, err := svc.Exists(ctx, 0); err != nil || ok {
		t.Fatalf("expected id 0 to not exist (ok=%v err=%v)", ok, err)
	}
	if ok, _ := svc.Exists(ctx, 3); ok {
		t.Fatalf("expected doctor 3 to not exist")
	}
}

func TestExists_PropagatesRepoErrors(t *testing.T) {
	repo := newTestRepo()
	repo.fail = errors.New("db down")
	svc := NewService(repo, nil)

	if _, err := svc.Exists(context.Background(), 1); err == nil {
		t.Fatalf("expected repo error")
	}
}
