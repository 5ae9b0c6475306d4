package sqlconsole

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	gotQuery   string
	gotMaxRows int
	res        Result
	err        error
	block      bool
}

func (f *fakeEngine) RunReadOnly(ctx context.Context, query string, maxRows int) (Result, error) {
	f.gotQuery = query
	f.gotMaxRows = maxRows
	if f.block {
		<-ctx.Done()
		return Result{}, ctx.Err()
	}
	return f.res, f.err
}

func TestService_Run_OK(t *testing.T) {
	eng := &fakeEngine{res: Result{
		Columns: []string{"doctor_id", "first_name"},
		Rows:    [][]any{{int64(1), "Gregory"}},
	}}
	svc := NewService(eng, Options{MaxRows: 50})

	res, err := svc.Run(context.Background(), "SELECT doctor_id, first_name FROM doctors;")
	require.NoError(t, err)

	assert.Equal(t, "SELECT doctor_id, first_name FROM doctors", eng.gotQuery)
	assert.Equal(t, 50, eng.gotMaxRows)
	assert.Equal(t, 1, res.RowCount())
	assert.Equal(t, []string{"doctor_id", "first_name"}, res.Table().Columns)

	hist := svc.History()
	require.Len(t, hist, 1)
	assert.NotEmpty(t, hist[0].ID)
	assert.Equal(t, 1, hist[0].RowCount)
	assert.Empty(t, hist[0].Error)
}

func TestService_Run_RejectedNeverReachesEngine(t *testing.T) {
	eng := &fakeEngine{}
	svc := NewService(eng, Options{})

	_, err := svc.Run(context.Background(), "DELETE FROM appointments")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadOnly))
	assert.Empty(t, eng.gotQuery)

	hist := svc.History()
	require.Len(t, hist, 1)
	assert.Contains(t, hist[0].Error, "not allowed")
}

func TestService_Run_WriteBehindCTENeverReachesEngine(t *testing.T) {
	eng := &fakeEngine{}
	svc := NewService(eng, Options{})

	_, err := svc.Run(context.Background(), "WITH x AS (SELECT 1) DELETE FROM treatments")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadOnly))
	assert.Empty(t, eng.gotQuery)
}

func TestService_Run_DefaultsApplied(t *testing.T) {
	eng := &fakeEngine{}
	svc := NewService(eng, Options{})

	_, err := svc.Run(context.Background(), DefaultQuery)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRows, eng.gotMaxRows)
}

func TestService_Run_EngineFailureIsClientError(t *testing.T) {
	eng := &fakeEngine{err: fmt.Errorf("%w: no such table: appointmentz", ErrQueryFailed)}
	svc := NewService(eng, Options{})

	_, err := svc.Run(context.Background(), "SELECT * FROM appointmentz")
	require.Error(t, err)
	assert.True(t, IsClientError(err))
	assert.Contains(t, err.Error(), "no such table")
}

func TestService_Run_Timeout(t *testing.T) {
	eng := &fakeEngine{block: true}
	svc := NewService(eng, Options{Timeout: 20 * time.Millisecond})

	_, err := svc.Run(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.False(t, IsClientError(err))
}

func TestService_Run_NoEngine(t *testing.T) {
	svc := NewService(nil, Options{})
	assert.False(t, svc.Available())

	_, err := svc.Run(context.Background(), "SELECT 1")
	assert.True(t, errors.Is(err, ErrUnavailable))

	// La validación corre antes que la disponibilidad.
	_, err = svc.Run(context.Background(), "DROP TABLE doctors")
	assert.True(t, errors.Is(err, ErrReadOnly))
}
