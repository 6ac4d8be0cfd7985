package chatclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func msgAt(id, body string, at time.Time) Message {
	return Message{ID: id, Body: body, UserID: "u1", RoomID: "r1", CreatedAt: at}
}

func TestTimeline_Seed_SortsByCreatedAt(t *testing.T) {
	req := require.New(t)
	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	timeline := NewTimeline()
	timeline.Seed([]Message{
		msgAt("m3", "third", base.Add(2*time.Minute)),
		msgAt("m1", "first", base),
		msgAt("m2", "second", base.Add(time.Minute)),
	})

	msgs := timeline.Messages()
	req.Len(msgs, 3)
	req.Equal("m1", msgs[0].ID)
	req.Equal("m2", msgs[1].ID)
	req.Equal("m3", msgs[2].ID)

	for i := 1; i < len(msgs); i++ {
		req.False(msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
	}
}

func TestTimeline_Seed_StableOnEqualTimestamps(t *testing.T) {
	req := require.New(t)
	at := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	timeline := NewTimeline()
	timeline.Seed([]Message{
		msgAt("a", "", at),
		msgAt("b", "", at),
		msgAt("c", "", at),
	})

	msgs := timeline.Messages()
	req.Equal("a", msgs[0].ID)
	req.Equal("b", msgs[1].ID)
	req.Equal("c", msgs[2].ID)
}

func TestTimeline_Append_KeepsOrderForOutOfOrderArrival(t *testing.T) {
	req := require.New(t)
	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	timeline := NewTimeline()
	timeline.Append(msgAt("m2", "later", base.Add(time.Minute)))
	timeline.Append(msgAt("m1", "earlier", base))

	msgs := timeline.Messages()
	req.Len(msgs, 2)
	req.Equal("m1", msgs[0].ID)
	req.Equal("m2", msgs[1].ID)
}

func TestTimeline_Append_IdempotentOnID(t *testing.T) {
	req := require.New(t)
	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	timeline := NewTimeline()
	timeline.Append(msgAt("m1", "optimistic copy", base))
	timeline.Append(msgAt("m1", "server echo", base))

	msgs := timeline.Messages()
	req.Len(msgs, 1)
	req.Equal("server echo", msgs[0].Body)
}

func TestTimeline_SeedThenSocketAppend(t *testing.T) {
	req := require.New(t)
	t0 := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(30 * time.Second)

	timeline := NewTimeline()
	timeline.Seed([]Message{msgAt("m1", "Hello, how are you?", t0)})
	timeline.Append(msgAt("m2", "I'm good", t1))

	msgs := timeline.Messages()
	req.Len(msgs, 2)
	req.Equal("m1", msgs[0].ID)
	req.Equal("m2", msgs[1].ID)
}

func TestTimeline_View_NewestFirstAndRestartable(t *testing.T) {
	req := require.New(t)
	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	timeline := NewTimeline()
	timeline.Seed([]Message{
		msgAt("m1", "", base),
		msgAt("m2", "", base.Add(time.Minute)),
	})

	collect := func() []string {
		var ids []string
		for msg := range timeline.View() {
			ids = append(ids, msg.ID)
		}
		return ids
	}

	req.Equal([]string{"m2", "m1"}, collect())
	// Последовательность перезапускаемая
	req.Equal([]string{"m2", "m1"}, collect())
}

func TestTimeline_View_EarlyBreak(t *testing.T) {
	req := require.New(t)
	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	timeline := NewTimeline()
	timeline.Seed([]Message{
		msgAt("m1", "", base),
		msgAt("m2", "", base.Add(time.Minute)),
		msgAt("m3", "", base.Add(2*time.Minute)),
	})

	var first string
	for msg := range timeline.View() {
		first = msg.ID
		break
	}
	req.Equal("m3", first)
}
