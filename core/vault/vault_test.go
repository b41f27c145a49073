package vault

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/pyropy/vault/core/maidmanager"
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/core/routing"
	"github.com/pyropy/vault/core/routing/routingtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// membershipRouter records traffic like routingtest.Router but answers group
// queries from a real membership table.
type membershipRouter struct {
	*routingtest.Router
	membership *routing.Membership
}

func (r membershipRouter) CloseGroup(name model.XorName) ([]model.XorName, error) {
	return r.membership.CloseGroup(name)
}

type testVault struct {
	*Vault
	router      *routingtest.Router
	maidManager *maidmanager.MaidManager
	client      model.Authority
	clientName  model.XorName
}

func startVault(t *testing.T, membership *routing.Membership) *testVault {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	client := model.NewClient(pub, model.RandomXorName())

	router := routingtest.NewRouter()
	var r routing.Router = router
	if membership != nil {
		r = membershipRouter{Router: router, membership: membership}
	}

	mm := maidmanager.New(maidmanager.DefaultConfig(), r, dssync.MutexWrap(ds.NewMapDatastore()))
	v := New(mm, membership, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, v.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &testVault{
		Vault:       v,
		router:      router,
		maidManager: mm,
		client:      client,
		clientName:  model.ClientName(client),
	}
}

func (tv *testVault) put(data model.Data) model.RequestMessage {
	return model.NewPutRequest(tv.client, model.NewClientManager(tv.clientName), data, model.NewMessageID())
}

func TestVaultSerializesConcurrentPuts(t *testing.T) {
	ctx := context.Background()
	tv := startVault(t, nil)

	create := tv.put(model.NewStructuredData(model.AccountCreationTag, tv.clientName, nil))
	require.NoError(t, tv.HandlePut(ctx, create))

	const puts = 50
	var g errgroup.Group
	for i := 0; i < puts; i++ {
		request := tv.put(model.NewImmutableData([]byte{byte(i)}))
		g.Go(func() error {
			return tv.HandlePut(ctx, request)
		})
	}
	require.NoError(t, g.Wait())

	account, found, err := tv.maidManager.Account(ctx, tv.clientName)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, (puts+1)*model.DefaultPayment, account.DataStored)
	assert.Len(t, tv.router.PutRequests, puts+1)
}

func TestVaultCompletions(t *testing.T) {
	ctx := context.Background()
	tv := startVault(t, nil)

	create := tv.put(model.NewStructuredData(model.AccountCreationTag, tv.clientName, nil))
	require.NoError(t, tv.HandlePut(ctx, create))
	require.NoError(t, tv.HandlePutSuccess(ctx, create.Content.ID))

	err := tv.HandlePutFailure(ctx, create.Content.ID, nil)
	assert.ErrorIs(t, err, maidmanager.ErrFailedToFindCachedRequest)

	request := tv.put(model.NewImmutableData([]byte("data")))
	err = tv.HandlePut(ctx, request)
	require.NoError(t, err)

	indicator, err := model.Serialize(model.NewClientError(model.DataExists, ""))
	require.NoError(t, err)
	require.NoError(t, tv.HandlePutFailure(ctx, request.Content.ID, indicator))

	assert.Len(t, tv.router.PutSuccesses, 1)
	assert.Len(t, tv.router.PutFailures, 1)
}

func TestVaultChurnUpdatesMembership(t *testing.T) {
	ctx := context.Background()
	self := model.XorName{0x00}
	membership := routing.NewMembership(self, 1)
	tv := startVault(t, membership)

	near, far := model.XorName{0x01}, model.XorName{0xf0}
	require.NoError(t, tv.maidManager.HandleRefresh(ctx, near, model.DefaultAccount()))
	require.NoError(t, tv.maidManager.HandleRefresh(ctx, far, model.DefaultAccount()))

	require.NoError(t, tv.HandleChurn(ctx, []model.XorName{{0xf1}}))
	assert.ElementsMatch(t, []model.XorName{self, {0xf1}}, membership.Nodes())

	_, found, err := tv.maidManager.Account(ctx, near)
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = tv.maidManager.Account(ctx, far)
	require.NoError(t, err)
	assert.False(t, found, "0xf1 is closer to the far account")

	require.Len(t, tv.router.RefreshRequests, 1)
	assert.Equal(t, model.NewClientManager(near), tv.router.RefreshRequests[0].Src)
}

func TestVaultChurnBeforeJoin(t *testing.T) {
	ctx := context.Background()
	tv := startVault(t, routing.NewMembership(model.RandomXorName(), 4))
	name := model.RandomXorName()
	require.NoError(t, tv.maidManager.HandleRefresh(ctx, name, model.DefaultAccount()))

	require.NoError(t, tv.HandleChurn(ctx, nil))

	_, found, err := tv.maidManager.Account(ctx, name)
	require.NoError(t, err)
	assert.False(t, found, "accounts whose group cannot be determined are dropped")
}

func TestVaultRefresh(t *testing.T) {
	ctx := context.Background()
	tv := startVault(t, nil)
	name := model.RandomXorName()

	content, err := model.Serialize(model.NewAccountRefresh(name, model.NewAccount(42)))
	require.NoError(t, err)
	require.NoError(t, tv.HandleRefresh(ctx, content))

	account, found, err := tv.maidManager.Account(ctx, name)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.NewAccount(42), account)
}

func TestVaultSweep(t *testing.T) {
	tv := startVault(t, nil)

	swept, err := tv.SweepRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, swept)
}

func TestVaultStopped(t *testing.T) {
	mm := maidmanager.New(maidmanager.DefaultConfig(), routingtest.NewRouter(), ds.NewMapDatastore())
	v := New(mm, nil, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, v.Run(ctx))

	err := v.HandleChurn(context.Background(), nil)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestVaultSubmitHonoursContext(t *testing.T) {
	mm := maidmanager.New(maidmanager.DefaultConfig(), routingtest.NewRouter(), ds.NewMapDatastore())
	v := New(mm, nil, zap.NewNop().Sugar())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := v.HandleChurn(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
