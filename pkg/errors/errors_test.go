package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	onError func(*VizError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *VizError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidArgument, "invalid_argument"},
		{KindRender, "render"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
		{ErrorKind(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", int(tt.kind))
	}
}

func TestInvalidArgumentWrapsSentinel(t *testing.T) {
	err := InvalidArgument("render.NewStack", "%v is not a valid Stack", nil)

	assert.Equal(t, KindInvalidArgument, err.Kind)
	assert.True(t, Is(err, ErrInvalidArgument))
	assert.Equal(t, "render.NewStack [invalid_argument]: invalid argument: <nil> is not a valid Stack", err.Error())

	wrapped := fmt.Errorf("build board: %w", err)
	var viz *VizError
	require.True(t, As(wrapped, &viz))
	assert.Equal(t, "render.NewStack", viz.Op)
}

func TestPanicErrorString(t *testing.T) {
	assert.Equal(t, "panic: boom", (&PanicError{Value: "boom"}).Error())
	assert.Equal(t, "panic in render.Refresh: boom", (&PanicError{Op: "render.Refresh", Value: "boom"}).Error())
}

func TestReport(t *testing.T) {
	var captured *VizError
	SetHandler(&testHandler{onError: func(err *VizError) { captured = err }})
	defer SetHandler(nil)

	Report(&VizError{Op: "scene.Paint", Kind: KindRender, Err: fmt.Errorf("bad path")})

	require.NotNil(t, captured)
	assert.Equal(t, "scene.Paint", captured.Op)
	assert.False(t, captured.Timestamp.IsZero())

	Report(nil)
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("render.BoxDrawer.Update")
		panic("intentional test panic")
	}()

	require.NotNil(t, captured)
	assert.Equal(t, "intentional test panic", captured.Value)
	assert.Equal(t, "render.BoxDrawer.Update", captured.Op)
	assert.NotEmpty(t, captured.StackTrace)
	assert.WithinDuration(t, time.Now(), captured.Timestamp, time.Minute)
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	assert.IsType(t, &LogHandler{}, Handler())
}
