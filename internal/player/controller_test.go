package player

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeNode struct {
	played   []Track
	stops    int
	pauses   []bool
	seeks    []time.Duration
	volumes  []int
	destroys int
	failIDs  map[string]bool
}

func (n *fakeNode) Play(_ context.Context, _ string, t Track) error {
	if n.failIDs[t.ID] {
		return errors.New("load failed")
	}
	n.played = append(n.played, t)
	return nil
}

func (n *fakeNode) Stop(context.Context, string) error { n.stops++; return nil }

func (n *fakeNode) Pause(_ context.Context, _ string, paused bool) error {
	n.pauses = append(n.pauses, paused)
	return nil
}

func (n *fakeNode) Seek(_ context.Context, _ string, pos time.Duration) error {
	n.seeks = append(n.seeks, pos)
	return nil
}

func (n *fakeNode) SetVolume(_ context.Context, _ string, v int) error {
	n.volumes = append(n.volumes, v)
	return nil
}

func (n *fakeNode) Destroy(context.Context, string) error { n.destroys++; return nil }

type fakeVoice struct {
	joins   []string
	leaves  []string
	joinErr error
}

func (v *fakeVoice) Join(_, channelID string) error {
	if v.joinErr != nil {
		return v.joinErr
	}
	v.joins = append(v.joins, channelID)
	return nil
}

func (v *fakeVoice) Leave(guildID string) error {
	v.leaves = append(v.leaves, guildID)
	return nil
}

func (v *fakeVoice) Listeners(string, string) (int, error) { return 1, nil }

type fakeNotifier struct {
	sends   int
	edits   int
	deletes int
	editErr error
	last    Status
	lastRef MessageRef
}

func (n *fakeNotifier) Send(channelID string, st Status) (MessageRef, error) {
	n.sends++
	n.last = st
	n.lastRef = MessageRef{ChannelID: channelID, MessageID: "m" + string(rune('0'+n.sends))}
	return n.lastRef, nil
}

func (n *fakeNotifier) Edit(_ MessageRef, st Status) error {
	if n.editErr != nil {
		return n.editErr
	}
	n.edits++
	n.last = st
	return nil
}

func (n *fakeNotifier) Delete(MessageRef) error { n.deletes++; return nil }

type fakeRecommender struct {
	next  *Track
	err   error
	seeds []Track
}

func (r *fakeRecommender) NextTrack(_ context.Context, seed Track) (*Track, error) {
	r.seeds = append(r.seeds, seed)
	if r.err != nil {
		return nil, r.err
	}
	return r.next, nil
}

const testGuild = "g1"

func newTestController() (*Controller, *fakeNode, *fakeVoice, *fakeNotifier, *fakeRecommender) {
	node := &fakeNode{}
	voice := &fakeVoice{}
	notify := &fakeNotifier{}
	rec := &fakeRecommender{}
	return NewController(node, voice, notify, rec), node, voice, notify, rec
}

func startPlayback(t *testing.T, c *Controller, ids ...string) {
	t.Helper()
	var tracks []Track
	for _, id := range ids {
		tracks = append(tracks, mkTrack(id))
	}
	started, err := c.Play(context.Background(), testGuild, "vc1", "tc1", tracks)
	if err != nil {
		t.Fatal(err)
	}
	if !started {
		t.Fatal("playback did not start on idle session")
	}
}

func playedIDs(n *fakeNode) []string {
	var ids []string
	for _, t := range n.played {
		ids = append(ids, t.ID)
	}
	return ids
}

func wantPlayed(t *testing.T, n *fakeNode, want ...string) {
	t.Helper()
	got := playedIDs(n)
	if len(got) != len(want) {
		t.Fatalf("played = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("played = %v, want %v", got, want)
		}
	}
}

func TestPlayStartsWhenIdle(t *testing.T) {
	c, node, voice, _, _ := newTestController()
	startPlayback(t, c, "a", "b")

	if len(voice.joins) != 1 || voice.joins[0] != "vc1" {
		t.Fatalf("voice joins = %v", voice.joins)
	}
	wantPlayed(t, node, "a")

	s, ok := c.Session(testGuild)
	if !ok {
		t.Fatal("no session after Play")
	}
	if cur, ok := s.Current(); !ok || cur.ID != "a" {
		t.Fatalf("current = %v, %v", cur.ID, ok)
	}
	if got := s.QueueTracks(); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("queue = %v", got)
	}
}

func TestPlayAppendsWhilePlaying(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a")

	started, err := c.Play(context.Background(), testGuild, "vc1", "tc1", []Track{mkTrack("b")})
	if err != nil {
		t.Fatal(err)
	}
	if started {
		t.Fatal("enqueue behind a playing track reported as started")
	}
	wantPlayed(t, node, "a")
}

func TestPlayJoinFailureLeavesNoSession(t *testing.T) {
	c, node, voice, _, _ := newTestController()
	voice.joinErr = errors.New("no permission")

	_, err := c.Play(context.Background(), testGuild, "vc1", "tc1", []Track{mkTrack("a")})
	if err == nil {
		t.Fatal("expected join error")
	}
	if _, ok := c.Session(testGuild); ok {
		t.Fatal("session survived a failed voice join")
	}
	if len(node.played) != 0 {
		t.Fatalf("played = %v after failed join", playedIDs(node))
	}
}

func TestSkipAdvancesOnlyFromEndEvent(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a", "b")

	if err := c.Skip(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	if node.stops != 1 {
		t.Fatalf("stops = %d, want 1", node.stops)
	}
	// skip itself must not advance; only the end event does
	wantPlayed(t, node, "a")

	s, _ := c.Session(testGuild)
	if s.State() != StateAwaitingNext {
		t.Fatalf("state = %v, want awaiting next", s.State())
	}

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndStopped})
	wantPlayed(t, node, "a", "b")
}

func TestStopThenStaleEndEvent(t *testing.T) {
	c, node, voice, notify, _ := newTestController()
	startPlayback(t, c, "a", "b")
	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackStart, Track: &a})

	if err := c.Stop(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Session(testGuild); ok {
		t.Fatal("session survived Stop")
	}
	if node.destroys != 1 {
		t.Fatalf("destroys = %d, want 1", node.destroys)
	}
	if len(voice.leaves) != 1 {
		t.Fatalf("leaves = %v", voice.leaves)
	}
	if notify.deletes != 1 {
		t.Fatalf("deletes = %d, want 1", notify.deletes)
	}

	// the stop directive's end event arrives after teardown and must not
	// resurrect playback
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndStopped})
	wantPlayed(t, node, "a")
	if _, ok := c.Session(testGuild); ok {
		t.Fatal("stale end event recreated the session")
	}
}

func TestStopReasonSuppressesAdvance(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a", "b")

	// simulate the end event landing after the reason was recorded but
	// before the session map entry is gone
	s, _ := c.Session(testGuild)
	s.mu.Lock()
	s.stopReason = StopUser
	s.mu.Unlock()

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndStopped})

	wantPlayed(t, node, "a")
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
}

func TestPauseResumeTransitions(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a")

	if err := c.Pause(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	if err := c.Pause(context.Background(), testGuild); err != ErrAlreadyPaused {
		t.Fatalf("second pause = %v, want ErrAlreadyPaused", err)
	}

	s, _ := c.Session(testGuild)
	if s.State() != StatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}

	if err := c.Resume(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	if err := c.Resume(context.Background(), testGuild); err != ErrNotPaused {
		t.Fatalf("second resume = %v, want ErrNotPaused", err)
	}
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State())
	}

	if len(node.pauses) != 2 || !node.pauses[0] || node.pauses[1] {
		t.Fatalf("pause directives = %v, want [true false]", node.pauses)
	}
}

func TestPauseWithoutTrack(t *testing.T) {
	c, _, _, _, _ := newTestController()
	if err := c.Pause(context.Background(), testGuild); err != ErrNoSession {
		t.Fatalf("pause without session = %v, want ErrNoSession", err)
	}

	startPlayback(t, c, "a")
	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})

	if err := c.Pause(context.Background(), testGuild); err != ErrNothingPlaying {
		t.Fatalf("pause while idle = %v, want ErrNothingPlaying", err)
	}
}

func TestVolumeClamping(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a")

	got, err := c.SetVolume(context.Background(), testGuild, 95)
	if err != nil || got != 95 {
		t.Fatalf("SetVolume(95) = %d, %v", got, err)
	}
	got, err = c.AdjustVolume(context.Background(), testGuild, 10)
	if err != nil || got != 100 {
		t.Fatalf("AdjustVolume(+10) = %d, %v, want 100", got, err)
	}
	got, err = c.AdjustVolume(context.Background(), testGuild, -250)
	if err != nil || got != 0 {
		t.Fatalf("AdjustVolume(-250) = %d, %v, want 0", got, err)
	}
	got, err = c.SetVolume(context.Background(), testGuild, 150)
	if err != nil || got != 100 {
		t.Fatalf("SetVolume(150) = %d, %v, want 100", got, err)
	}

	want := []int{95, 100, 0, 100}
	if len(node.volumes) != len(want) {
		t.Fatalf("node volumes = %v, want %v", node.volumes, want)
	}
	for i := range want {
		if node.volumes[i] != want[i] {
			t.Fatalf("node volumes = %v, want %v", node.volumes, want)
		}
	}
}

func TestLoopTrackReplaysOnNaturalEnd(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a")
	if err := c.SetLoop(testGuild, LoopTrack); err != nil {
		t.Fatal(err)
	}

	a := mkTrack("a")
	for i := 0; i < 3; i++ {
		c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})
	}
	wantPlayed(t, node, "a", "a", "a", "a")
}

func TestLoopTrackSkipMovesOn(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a", "b")
	if err := c.SetLoop(testGuild, LoopTrack); err != nil {
		t.Fatal(err)
	}

	if err := c.Skip(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndStopped})
	wantPlayed(t, node, "a", "b")
}

func TestLoopQueueRefillsFromHistory(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a", "b")
	if err := c.SetLoop(testGuild, LoopQueue); err != nil {
		t.Fatal(err)
	}

	end := func(id string) {
		tr := mkTrack(id)
		c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &tr, Reason: EndNatural})
	}
	end("a") // plays b
	end("b") // queue empty, refilled from history in original order
	end("a")
	wantPlayed(t, node, "a", "b", "a", "b")
}

func TestAdvanceSkipsRejectedTracks(t *testing.T) {
	c, node, _, _, _ := newTestController()
	node.failIDs = map[string]bool{"b": true}
	startPlayback(t, c, "a", "b", "c")

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})
	wantPlayed(t, node, "a", "c")
}

func TestExhaustionGoesIdle(t *testing.T) {
	c, node, _, notify, _ := newTestController()
	startPlayback(t, c, "a")

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})

	wantPlayed(t, node, "a")
	s, _ := c.Session(testGuild)
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
	if notify.last.Track != nil {
		t.Fatal("idle status still carries a track")
	}
}

func TestAutoplayFillsExhaustedQueue(t *testing.T) {
	c, node, _, _, rec := newTestController()
	next := mkTrack("suggested")
	rec.next = &next
	startPlayback(t, c, "a")
	if _, err := c.ToggleAutoplay(testGuild); err != nil {
		t.Fatal(err)
	}

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})

	wantPlayed(t, node, "a", "suggested")
	if len(rec.seeds) != 1 || rec.seeds[0].ID != "a" {
		t.Fatalf("recommender seeds = %v", rec.seeds)
	}
	if got := node.played[1].Requester; got != AutoRequester {
		t.Fatalf("autoplay requester = %v, want %v", got, AutoRequester)
	}
}

func TestAutoplayFailureDegradesToIdle(t *testing.T) {
	c, node, _, _, rec := newTestController()
	rec.err = errors.New("provider down")
	startPlayback(t, c, "a")
	if _, err := c.ToggleAutoplay(testGuild); err != nil {
		t.Fatal(err)
	}

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})

	wantPlayed(t, node, "a")
	s, _ := c.Session(testGuild)
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
}

func TestNowPlayingEditFallback(t *testing.T) {
	c, _, _, notify, _ := newTestController()
	startPlayback(t, c, "a")

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackStart, Track: &a})
	if notify.sends != 1 {
		t.Fatalf("sends = %d, want 1", notify.sends)
	}

	// the attached message vanished; the next update must send a fresh one
	notify.editErr = ErrMessageNotFound
	if err := c.Pause(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	if notify.sends != 2 {
		t.Fatalf("sends = %d, want 2 after edit fallback", notify.sends)
	}

	// and the new reference sticks
	notify.editErr = nil
	if err := c.Resume(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}
	if notify.edits != 1 {
		t.Fatalf("edits = %d, want 1 after reattach", notify.edits)
	}
}

func TestJumpSkipsToChosenTrack(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a", "b", "c")

	if err := c.Jump(context.Background(), testGuild, 2); err != nil {
		t.Fatal(err)
	}
	if node.stops != 1 {
		t.Fatalf("stops = %d, want 1", node.stops)
	}

	a := mkTrack("a")
	c.HandleEvent(context.Background(), testGuild, Event{Type: EventTrackEnd, Track: &a, Reason: EndStopped})
	wantPlayed(t, node, "a", "c")
}

func TestJumpInvalidPositionLeavesPlayback(t *testing.T) {
	c, node, _, _, _ := newTestController()
	startPlayback(t, c, "a", "b")

	if err := c.Jump(context.Background(), testGuild, 5); err != ErrInvalidPosition {
		t.Fatalf("Jump(5) = %v, want ErrInvalidPosition", err)
	}
	if node.stops != 0 {
		t.Fatal("invalid jump stopped the current track")
	}
}

func TestInactivityEventTearsDown(t *testing.T) {
	c, node, voice, _, _ := newTestController()
	startPlayback(t, c, "a")

	c.HandleEvent(context.Background(), testGuild, Event{Type: EventPlayerInactive})
	if _, ok := c.Session(testGuild); ok {
		t.Fatal("session survived inactivity event")
	}
	if node.destroys != 1 || len(voice.leaves) != 1 {
		t.Fatalf("destroys = %d, leaves = %v", node.destroys, voice.leaves)
	}
}

func TestHandleEventUnknownGuild(t *testing.T) {
	c, node, _, _, _ := newTestController()
	a := mkTrack("a")
	c.HandleEvent(context.Background(), "nowhere", Event{Type: EventTrackEnd, Track: &a, Reason: EndNatural})
	if len(node.played) != 0 {
		t.Fatal("event for unknown guild started playback")
	}
}

func TestSessionHooks(t *testing.T) {
	c, _, _, _, _ := newTestController()
	var opened, closed []string
	c.OnSessionOpen = func(g string) { opened = append(opened, g) }
	c.OnSessionClose = func(g string) { closed = append(closed, g) }

	startPlayback(t, c, "a")
	if err := c.Stop(context.Background(), testGuild); err != nil {
		t.Fatal(err)
	}

	if len(opened) != 1 || opened[0] != testGuild {
		t.Fatalf("opened = %v", opened)
	}
	if len(closed) != 1 || closed[0] != testGuild {
		t.Fatalf("closed = %v", closed)
	}
}

func TestQueueOpsRequireSession(t *testing.T) {
	c, _, _, _, _ := newTestController()
	if err := c.Move(testGuild, 1, 2); err != ErrNoSession {
		t.Fatalf("Move = %v, want ErrNoSession", err)
	}
	if _, err := c.RemoveAt(testGuild, 1); err != ErrNoSession {
		t.Fatalf("RemoveAt = %v, want ErrNoSession", err)
	}
	if err := c.Shuffle(testGuild); err != ErrNoSession {
		t.Fatalf("Shuffle = %v, want ErrNoSession", err)
	}
	if _, err := c.ClearQueue(testGuild); err != ErrNoSession {
		t.Fatalf("ClearQueue = %v, want ErrNoSession", err)
	}
}
