package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmanagement/database"
)

func TestMockSourceFetchAllReturnsDataset(t *testing.T) {
	src := NewMockSource(time.Millisecond, MockClasses)

	classes, err := src.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 6)
	assert.Equal(t, "6ème A", classes[0].Name)
}

func TestMockSourceHonorsContextCancellation(t *testing.T) {
	src := NewMockSource(time.Second, MockClasses)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockSourceCreateEchoes(t *testing.T) {
	src := NewMockSource(time.Millisecond, MockClasses)

	in := database.SchoolClass{ClassID: 7, Name: "3ème C"}
	out, err := src.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMockStudentsCarryClassID(t *testing.T) {
	students := MockStudents(3)
	require.NotEmpty(t, students)
	for _, s := range students {
		assert.Equal(t, int64(3), s.ClassID)
	}
}

func TestMockEventsShareADay(t *testing.T) {
	byDate := database.EventsByDate(MockEvents())
	assert.GreaterOrEqual(t, len(byDate["2025-01-20"]), 2, "the canned calendar has a day with several events")
}

func TestMockUploaderMintsServerNames(t *testing.T) {
	u := &MockUploader{BaseURL: "https://uploads.example.com/", Delay: time.Millisecond}

	first, err := u.Upload(context.Background(), "/tmp/a.mp3", "cours.mp3", "audio/mpeg")
	require.NoError(t, err)
	second, err := u.Upload(context.Background(), "/tmp/a.mp3", "cours.mp3", "audio/mpeg")
	require.NoError(t, err)

	assert.Contains(t, first.URL, "https://uploads.example.com/")
	assert.Contains(t, first.URL, ".mp3")
	assert.NotEqual(t, first.URL, second.URL, "server names must not collide")
}

func TestMockUploaderRequiresFilename(t *testing.T) {
	u := &MockUploader{BaseURL: "https://uploads.example.com", Delay: time.Millisecond}
	_, err := u.Upload(context.Background(), "", "", "")
	assert.Error(t, err)
}

func TestKindForMime(t *testing.T) {
	assert.Equal(t, "audio", KindForMime("audio/mpeg"))
	assert.Equal(t, "file", KindForMime("application/pdf"))
	assert.Equal(t, "file", KindForMime(""))
}
