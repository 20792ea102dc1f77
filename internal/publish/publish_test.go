package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct {
	doc string
	err error
}

func (s stubExporter) ExportICS(context.Context) (string, error) { return s.doc, s.err }

type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) SaveFile(_ context.Context, name string, body []byte) (string, error) {
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[name] = body
	return "mem://" + name, nil
}

func TestPublish(t *testing.T) {
	store := &memoryStorage{}
	p := NewPublisher(stubExporter{doc: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}, store, "calendar.ics")

	location, err := p.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mem://calendar.ics", location)
	assert.Equal(t, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", string(store.files["calendar.ics"]))
}

func TestPublishExportFailure(t *testing.T) {
	store := &memoryStorage{}
	boom := errors.New("store offline")
	p := NewPublisher(stubExporter{err: boom}, store, "calendar.ics")

	_, err := p.Publish(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.files)
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	p := NewPublisher(stubExporter{}, &memoryStorage{}, "calendar.ics")

	_, err := Schedule("every now and then", p)
	assert.Error(t, err)

	c, err := Schedule("@hourly", p)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
