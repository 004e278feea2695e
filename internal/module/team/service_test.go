package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"

	"github.com/buildmate/server/internal/module/board"
	"github.com/buildmate/server/internal/shared/config"
	"github.com/buildmate/server/internal/shared/database"
	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, board.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.events = append(p.events, e)
}

// failingProjects fails every project insert made inside a transaction.
type failingProjects struct {
	board.Repository
}

func (f failingProjects) WithTx(*gorm.DB) board.Repository { return f }

func (f failingProjects) CreateProject(context.Context, *board.Project) error {
	return errors.New("disk full")
}

type fixture struct {
	svc       *Service
	db        *gorm.DB
	repo      Repository
	projects  board.Repository
	publisher *recordingPublisher
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		db:        db,
		repo:      NewRepository(db),
		projects:  board.NewRepository(db),
		publisher: &recordingPublisher{},
	}
	f.svc = NewService(f.repo, f.projects, f.publisher, nil)
	clock := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return f
}

func createRequest(name string) *CreateTeamRequest {
	return &CreateTeamRequest{
		Name:           name,
		ProjectTitle:   "RideShare",
		ProjectSummary: validSummary,
		TechStack:      "Go, Postgres",
	}
}

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	owner := uuid.New()

	team, err := f.svc.CreateTeam(ctx, owner, createRequest("Night Owls"))
	require.NoError(t, err)
	assert.Equal(t, owner, team.CreatedBy)
	assert.Equal(t, StatusOpen, team.Status)

	ok, err := f.svc.IsMember(ctx, team.ID, owner)
	require.NoError(t, err)
	assert.True(t, ok)

	member, err := f.repo.GetMember(ctx, team.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, member.Role)

	project, err := f.projects.GetProject(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, board.DefaultColumns(), project.Columns)

	stored, err := f.repo.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "RideShare", stored.ProjectIdea.Title)
	assert.Equal(t, team.TechStack, stored.TechStack)

	require.Len(t, f.publisher.events, 1)
	created, ok := f.publisher.events[0].(*events.TeamCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, team.ID, created.AggregateID())
	assert.Equal(t, owner, created.CreatedBy)
}

func TestService_CreateTeamIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.svc.projects = failingProjects{Repository: f.projects}
	owner := uuid.New()

	_, err := f.svc.CreateTeam(ctx, owner, createRequest("Night Owls"))
	require.Error(t, err)

	var teams, members int64
	require.NoError(t, f.db.Model(&Team{}).Count(&teams).Error)
	require.NoError(t, f.db.Model(&Member{}).Count(&members).Error)
	assert.Zero(t, teams)
	assert.Zero(t, members)
	assert.Empty(t, f.publisher.events)
}

func TestService_CreateTeamValidation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateTeam(context.Background(), uuid.New(), createRequest("AB"))
	assert.ErrorIs(t, err, ErrNameTooShort)
	assert.Empty(t, f.publisher.events)
}

func TestService_GetTeam(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	owner, mate, stranger := uuid.New(), uuid.New(), uuid.New()

	team, err := f.svc.CreateTeam(ctx, owner, createRequest("Night Owls"))
	require.NoError(t, err)

	_, err = f.svc.GetTeam(ctx, team.ID, stranger)
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = f.svc.AddMember(ctx, team.ID, owner, mate)
	require.NoError(t, err)

	detail, err := f.svc.GetTeam(ctx, team.ID, mate)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, detail.MyRole)
	require.Len(t, detail.Members, 2)
	assert.Equal(t, owner, detail.Members[0].UserID)
	assert.Equal(t, mate, detail.Members[1].UserID)
}

func TestService_AddMember(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	owner, mate, other := uuid.New(), uuid.New(), uuid.New()

	team, err := f.svc.CreateTeam(ctx, owner, createRequest("Night Owls"))
	require.NoError(t, err)

	_, err = f.svc.AddMember(ctx, team.ID, owner, mate)
	require.NoError(t, err)

	_, err = f.svc.AddMember(ctx, team.ID, owner, mate)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = f.svc.AddMember(ctx, team.ID, mate, other)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = f.svc.AddMember(ctx, team.ID, other, other)
	assert.ErrorIs(t, err, ErrNotMember)
}

// recordSpans routes the global tracer provider into an in-memory recorder
// for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func endedSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range sr.Ended() {
		if s.Name() == name {
			return s
		}
	}
	require.FailNow(t, "span not recorded", name)
	return nil
}

func TestService_AddMemberSpan(t *testing.T) {
	tests := []struct {
		name      string
		actor     func(owner, mate uuid.UUID) uuid.UUID
		wantErr   error
		wantError bool
	}{
		{"owner adds", func(owner, _ uuid.UUID) uuid.UUID { return owner }, nil, false},
		{"non-member adds", func(_, mate uuid.UUID) uuid.UUID { return mate }, ErrNotMember, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := setup(t)
			owner, mate := uuid.New(), uuid.New()
			team, err := f.svc.CreateTeam(ctx, owner, createRequest("Night Owls"))
			require.NoError(t, err)

			sr := recordSpans(t)
			_, err = f.svc.AddMember(ctx, team.ID, tt.actor(owner, mate), mate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			span := endedSpan(t, sr, "team.AddMember")
			assert.Equal(t, tt.wantError, len(span.Events()) > 0, "error recorded on span")
		})
	}
}

func TestService_ListMyTeams(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice, bob := uuid.New(), uuid.New()

	first, err := f.svc.CreateTeam(ctx, alice, createRequest("Night Owls"))
	require.NoError(t, err)
	second, err := f.svc.CreateTeam(ctx, bob, createRequest("Early Birds"))
	require.NoError(t, err)
	_, err = f.svc.AddMember(ctx, second.ID, bob, alice)
	require.NoError(t, err)

	teams, total, err := f.svc.ListMyTeams(ctx, alice, pagination.New())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, teams, 2)
	assert.Equal(t, second.ID, teams[0].ID)
	assert.Equal(t, first.ID, teams[1].ID)

	teams, total, err = f.svc.ListMyTeams(ctx, bob, &pagination.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, teams, 1)
	assert.Equal(t, second.ID, teams[0].ID)
}

func TestService_BoardMembership(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	owner, stranger := uuid.New(), uuid.New()

	team, err := f.svc.CreateTeam(ctx, owner, createRequest("Night Owls"))
	require.NoError(t, err)

	boards := board.NewService(f.projects, f.svc, nil, nil)

	view, err := boards.GetBoard(ctx, team.ID, owner)
	require.NoError(t, err)
	require.Len(t, view.Columns, 3)

	_, err = boards.GetBoard(ctx, team.ID, stranger)
	assert.ErrorIs(t, err, board.ErrNotMember)
}
