package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"runic/internal/network"
	"runic/internal/token"
)

// recordingPublisher acumula os eventos publicados para inspeção.
type recordingPublisher struct {
	matches []string
	turns   []int
}

func (p *recordingPublisher) MatchCreated(sessionID string) {
	p.matches = append(p.matches, sessionID)
}

func (p *recordingPublisher) TurnPlayed(sessionID string, turn int) {
	p.turns = append(p.turns, turn)
}

func (p *recordingPublisher) Close() {}

func newTestMatchmaker(t *testing.T) (*Matchmaker, *Registry, *recordingPublisher) {
	t.Helper()
	registry := NewRegistry(30, time.Hour, zap.NewNop())
	publisher := &recordingPublisher{}
	matchmaker := NewMatchmaker(token.NewIssuer(8), registry,
		func() Engine { return newFakeEngine() }, publisher, zap.NewNop())
	return matchmaker, registry, publisher
}

func decodeFound(t *testing.T, msg network.Message) foundPayload {
	t.Helper()
	var payload foundPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	return payload
}

func TestMatchmakerFirstClientWaits(t *testing.T) {
	matchmaker, registry, _ := newTestMatchmaker(t)

	alone := newFakeClient("alone")
	matchmaker.HandleConnect(alone)

	payload := decodeFound(t, alone.next(t))
	assert.Equal(t, StatusInSearch, payload.Status)
	assert.Empty(t, payload.HashURL)
	assert.Equal(t, 0, registry.Len())
}

func TestMatchmakerPairsSecondClient(t *testing.T) {
	matchmaker, registry, publisher := newTestMatchmaker(t)

	first := newFakeClient("first")
	second := newFakeClient("second")
	matchmaker.HandleConnect(first)
	first.next(t) // consome o in_search

	matchmaker.HandleConnect(second)

	// Quem chega fecha o par e fica com o assento 1; o esperador com o 2.
	forSecond := decodeFound(t, second.next(t))
	forFirst := decodeFound(t, first.next(t))

	assert.Equal(t, StatusFound, forSecond.Status)
	assert.Equal(t, StatusFound, forFirst.Status)
	assert.Equal(t, forSecond.HashURL, forFirst.HashURL)
	assert.NotEqual(t, forSecond.HashPlayer, forFirst.HashPlayer)

	assert.Equal(t, 1, registry.Len())
	assert.Equal(t, []string{forSecond.HashURL}, publisher.matches)

	// As credenciais entregues resolvem os assentos anunciados.
	sess, err := registry.Get(forSecond.HashURL)
	require.NoError(t, err)

	seat, _, err := sess.BindRoom(forSecond.HashPlayer, newFakeClient("room-a"))
	require.NoError(t, err)
	assert.Equal(t, 1, seat)

	seat, _, err = sess.BindRoom(forFirst.HashPlayer, newFakeClient("room-b"))
	require.NoError(t, err)
	assert.Equal(t, 2, seat)
}

func TestMatchmakerDisconnectClearsWaiter(t *testing.T) {
	matchmaker, registry, _ := newTestMatchmaker(t)

	leaver := newFakeClient("leaver")
	matchmaker.HandleConnect(leaver)
	leaver.next(t)

	matchmaker.HandleDisconnect(leaver)

	// Quem chega depois volta a esperar em vez de parear com uma conexão
	// que já caiu.
	next := newFakeClient("next")
	matchmaker.HandleConnect(next)

	payload := decodeFound(t, next.next(t))
	assert.Equal(t, StatusInSearch, payload.Status)
	assert.Equal(t, 0, registry.Len())
}

func TestMatchmakerDisconnectOfStrangerKeepsWaiter(t *testing.T) {
	matchmaker, registry, _ := newTestMatchmaker(t)

	waiter := newFakeClient("waiter")
	matchmaker.HandleConnect(waiter)
	waiter.next(t)

	matchmaker.HandleDisconnect(newFakeClient("stranger"))

	// O esperador continua lá: a próxima chegada fecha o par.
	arrival := newFakeClient("arrival")
	matchmaker.HandleConnect(arrival)

	assert.Equal(t, StatusFound, decodeFound(t, arrival.next(t)).Status)
	assert.Equal(t, StatusFound, decodeFound(t, waiter.next(t)).Status)
	assert.Equal(t, 1, registry.Len())
}

func TestMatchmakerDuplicateConnectDoesNotSelfPair(t *testing.T) {
	matchmaker, registry, _ := newTestMatchmaker(t)

	c := newFakeClient("twice")
	matchmaker.HandleConnect(c)
	matchmaker.HandleConnect(c)

	assert.Equal(t, StatusInSearch, decodeFound(t, c.next(t)).Status)
	assert.Equal(t, StatusInSearch, decodeFound(t, c.next(t)).Status)
	c.silent(t)
	assert.Equal(t, 0, registry.Len())
}
