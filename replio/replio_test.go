package replio

import (
	"bufio"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushableReader_DeliversPushedLines(t *testing.T) {
	r := NewPushableReader()
	r.PushLine("hello")
	r.PushLine("world")

	scanner := bufio.NewScanner(r)
	require.True(t, scanner.Scan())
	assert.Equal(t, "hello", scanner.Text())
	require.True(t, scanner.Scan())
	assert.Equal(t, "world", scanner.Text())
}

func TestPushableReader_ReadBlocksUntilPush(t *testing.T) {
	r := NewPushableReader()

	got := make(chan string, 1)
	go func() {
		buf := make([]byte, 16)
		n, err := r.Read(buf)
		if err == nil {
			got <- string(buf[:n])
		}
	}()

	select {
	case <-got:
		t.Fatal("read returned before any data was pushed")
	case <-time.After(50 * time.Millisecond):
	}

	r.PushBytes([]byte("ping"))

	select {
	case s := <-got:
		assert.Equal(t, "ping", s)
	case <-time.After(time.Second):
		t.Fatal("read did not observe the push")
	}
}

func TestPushableReader_CloseDrainsThenEOF(t *testing.T) {
	r := NewPushableReader()
	r.PushBytes([]byte("tail"))
	require.NoError(t, r.Close())

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "tail", string(data))

	_, err = r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestPushableReader_PushAfterCloseIgnored(t *testing.T) {
	r := NewPushableReader()
	require.NoError(t, r.Close())
	r.PushLine("late")

	_, err := r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineWriter_CallbackPerLine(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, err := w.Write([]byte("hello\nwor"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ld\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "world"}, lines)
}

func TestLineWriter_DropsCarriageReturns(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, err := w.Write([]byte("a\r\nb\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestLineWriter_FlushDeliversPartialLine(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, err := w.Write([]byte("partial"))
	require.NoError(t, err)
	assert.Empty(t, lines)

	w.Flush()
	assert.Equal(t, []string{"partial"}, lines)

	// Flushing an empty buffer delivers nothing.
	w.Flush()
	assert.Len(t, lines, 1)
}
