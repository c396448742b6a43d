package indexer

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/domain/search"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// Snapshot is one consistent view of the whole on-chain entity universe,
// ordered newest-first. It is immutable after publication.
type Snapshot struct {
	Bounties []entity.Bounty
	Quests   []entity.Quest
	Disputes []entity.Dispute

	// EntryCounts maps quest id to the number of entries, derived in the
	// same pass as the quest list.
	EntryCounts map[int64]int64

	TakenAt time.Time
}

// Aggregator drives the fetcher over the full id range [1, counter] of each
// contract and publishes the result wholesale: an atomic in-memory snapshot
// swap plus a table replacement inside one database transaction. Re-running
// against unchanged chain state yields an identical snapshot.
type Aggregator struct {
	fetcher *EntityFetcher
	quinty  chain.QuintyGateway
	quest   chain.QuestGateway
	dispute chain.DisputeGateway

	bountyRepo  repository.BountyRepository
	questRepo   repository.QuestRepository
	disputeRepo repository.DisputeRepository

	// searchCaller is optional, processes without a search index pass nil.
	searchCaller search.Caller

	snapshot atomic.Pointer[Snapshot]
	reload   sync.Mutex
}

func NewAggregator(
	fetcher *EntityFetcher,
	quinty chain.QuintyGateway,
	quest chain.QuestGateway,
	dispute chain.DisputeGateway,
	bountyRepo repository.BountyRepository,
	questRepo repository.QuestRepository,
	disputeRepo repository.DisputeRepository,
	searchCaller search.Caller,
) *Aggregator {
	a := &Aggregator{
		fetcher:      fetcher,
		quinty:       quinty,
		quest:        quest,
		dispute:      dispute,
		bountyRepo:   bountyRepo,
		questRepo:    questRepo,
		disputeRepo:  disputeRepo,
		searchCaller: searchCaller,
	}

	a.snapshot.Store(&Snapshot{EntryCounts: map[int64]int64{}})

	return a
}

func (a *Aggregator) Snapshot() *Snapshot {
	return a.snapshot.Load()
}

// ReloadAll re-derives every entity family from current chain storage and
// replaces the previous state wholesale. A family whose counter read fails
// keeps its last-known state (the list is never half-cleared by a flaky rpc).
func (a *Aggregator) ReloadAll(ctx context.Context) error {
	a.reload.Lock()
	defer a.reload.Unlock()

	prev := a.snapshot.Load()
	next := &Snapshot{
		Bounties:    prev.Bounties,
		Quests:      prev.Quests,
		Disputes:    prev.Disputes,
		EntryCounts: prev.EntryCounts,
		TakenAt:     time.Now(),
	}

	bounties, submissions, bountiesOK := a.collectBounties(ctx)
	quests, entries, questsOK := a.collectQuests(ctx)
	disputes, votes, disputesOK := a.collectDisputes(ctx)

	txCtx := xcontext.BeginTx(ctx)
	err := func() error {
		if bountiesOK {
			if err := a.bountyRepo.ReplaceAll(txCtx, bounties, submissions); err != nil {
				return err
			}
		}

		if questsOK {
			if err := a.questRepo.ReplaceAll(txCtx, quests, entries); err != nil {
				return err
			}
		}

		if disputesOK {
			if err := a.disputeRepo.ReplaceAll(txCtx, disputes, votes); err != nil {
				return err
			}
		}

		return nil
	}()
	if err != nil {
		xcontext.RollbackTx(txCtx)
		return err
	}

	if err := xcontext.CommitTx(txCtx); err != nil {
		return err
	}

	if bountiesOK {
		next.Bounties = attachSubmissions(bounties, submissions)
	}

	if questsOK {
		next.Quests = attachEntries(quests, entries)
		next.EntryCounts = make(map[int64]int64, len(quests))
		for _, quest := range quests {
			next.EntryCounts[quest.OnChainID] = quest.QualifiersCount
		}
	}

	if disputesOK {
		next.Disputes = attachVotes(disputes, votes)
	}

	a.snapshot.Store(next)
	a.indexForSearch(ctx, next.Bounties, next.Quests)

	return nil
}

func (a *Aggregator) indexForSearch(ctx context.Context, bounties []entity.Bounty, quests []entity.Quest) {
	if a.searchCaller == nil {
		return
	}

	for i := range bounties {
		err := a.searchCaller.IndexBounty(ctx, bounties[i].OnChainID, search.BountyData{
			Title:       bounties[i].Title,
			Description: string(bounties[i].Description),
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot index bounty %d: %v", bounties[i].OnChainID, err)
		}
	}

	for i := range quests {
		err := a.searchCaller.IndexQuest(ctx, quests[i].OnChainID, search.QuestData{
			Title:       quests[i].Title,
			Description: string(quests[i].Description),
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot index quest %d: %v", quests[i].OnChainID, err)
		}
	}
}

// collectBounties scans [1, counter] concurrently, waits for every fetch to
// settle, drops failures, and returns the survivors newest-first. The second
// return is false when the counter read itself failed.
func (a *Aggregator) collectBounties(ctx context.Context) ([]entity.Bounty, []entity.BountySubmission, bool) {
	counter, err := a.quinty.BountyCounter(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read bounty counter: %v", err)
		return nil, nil, false
	}

	n := counter.Int64()
	results := make([]*entity.Bounty, n+1)
	subResults := make([][]entity.BountySubmission, n+1)

	var wg sync.WaitGroup
	for id := int64(1); id <= n; id++ {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[id], subResults[id] = a.fetcher.FetchBounty(ctx, id)
		}()
	}
	wg.Wait()

	bounties := make([]entity.Bounty, 0, n)
	submissions := make([]entity.BountySubmission, 0)
	for id := n; id >= 1; id-- {
		if results[id] == nil {
			continue
		}

		bounties = append(bounties, *results[id])
		submissions = append(submissions, subResults[id]...)
	}

	return bounties, submissions, true
}

func (a *Aggregator) collectQuests(ctx context.Context) ([]entity.Quest, []entity.QuestEntry, bool) {
	counter, err := a.quest.QuestCounter(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read quest counter: %v", err)
		return nil, nil, false
	}

	n := counter.Int64()
	results := make([]*entity.Quest, n+1)
	entryResults := make([][]entity.QuestEntry, n+1)

	var wg sync.WaitGroup
	for id := int64(1); id <= n; id++ {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[id], entryResults[id] = a.fetcher.FetchQuest(ctx, id)
		}()
	}
	wg.Wait()

	quests := make([]entity.Quest, 0, n)
	entries := make([]entity.QuestEntry, 0)
	for id := n; id >= 1; id-- {
		if results[id] == nil {
			continue
		}

		quests = append(quests, *results[id])
		entries = append(entries, entryResults[id]...)
	}

	return quests, entries, true
}

func (a *Aggregator) collectDisputes(ctx context.Context) ([]entity.Dispute, []entity.DisputeVote, bool) {
	counter, err := a.dispute.DisputeCounter(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read dispute counter: %v", err)
		return nil, nil, false
	}

	n := counter.Int64()
	results := make([]*entity.Dispute, n+1)
	voteResults := make([][]entity.DisputeVote, n+1)

	var wg sync.WaitGroup
	for id := int64(1); id <= n; id++ {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[id], voteResults[id] = a.fetcher.FetchDispute(ctx, id)
		}()
	}
	wg.Wait()

	disputes := make([]entity.Dispute, 0, n)
	votes := make([]entity.DisputeVote, 0)
	for id := n; id >= 1; id-- {
		if results[id] == nil {
			continue
		}

		disputes = append(disputes, *results[id])
		votes = append(votes, voteResults[id]...)
	}

	return disputes, votes, true
}

// TopUpBounties fetches only the ids above the highest one already known.
// Creation events increment the counter without touching existing entities,
// so a full rescan is unnecessary.
func (a *Aggregator) TopUpBounties(ctx context.Context) error {
	a.reload.Lock()
	defer a.reload.Unlock()

	counter, err := a.quinty.BountyCounter(ctx)
	if err != nil {
		return err
	}

	prev := a.snapshot.Load()
	highest := int64(0)
	if len(prev.Bounties) > 0 {
		highest = prev.Bounties[0].OnChainID
	}

	n := counter.Int64()
	if n <= highest {
		return nil
	}

	fresh := make([]entity.Bounty, 0, n-highest)
	g, groupCtx := errgroup.WithContext(ctx)
	var mutex sync.Mutex
	for id := highest + 1; id <= n; id++ {
		id := id
		g.Go(func() error {
			bounty, submissions := a.fetcher.FetchBounty(groupCtx, id)
			if bounty == nil {
				return nil
			}

			if err := a.bountyRepo.Upsert(ctx, bounty, submissions); err != nil {
				return err
			}

			bounty.Submissions = submissions
			mutex.Lock()
			fresh = append(fresh, *bounty)
			mutex.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sortBountiesDesc(fresh)

	next := &Snapshot{
		Bounties:    append(fresh, prev.Bounties...),
		Quests:      prev.Quests,
		Disputes:    prev.Disputes,
		EntryCounts: prev.EntryCounts,
		TakenAt:     time.Now(),
	}
	a.snapshot.Store(next)
	a.indexForSearch(ctx, fresh, nil)

	return nil
}

func (a *Aggregator) TopUpQuests(ctx context.Context) error {
	a.reload.Lock()
	defer a.reload.Unlock()

	counter, err := a.quest.QuestCounter(ctx)
	if err != nil {
		return err
	}

	prev := a.snapshot.Load()
	highest := int64(0)
	if len(prev.Quests) > 0 {
		highest = prev.Quests[0].OnChainID
	}

	n := counter.Int64()
	if n <= highest {
		return nil
	}

	fresh := make([]entity.Quest, 0, n-highest)
	entryCounts := make(map[int64]int64, len(prev.EntryCounts))
	for id, count := range prev.EntryCounts {
		entryCounts[id] = count
	}

	g, groupCtx := errgroup.WithContext(ctx)
	var mutex sync.Mutex
	for id := highest + 1; id <= n; id++ {
		id := id
		g.Go(func() error {
			quest, entries := a.fetcher.FetchQuest(groupCtx, id)
			if quest == nil {
				return nil
			}

			if err := a.questRepo.Upsert(ctx, quest, entries); err != nil {
				return err
			}

			quest.Entries = entries
			mutex.Lock()
			fresh = append(fresh, *quest)
			entryCounts[quest.OnChainID] = quest.QualifiersCount
			mutex.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sortQuestsDesc(fresh)

	next := &Snapshot{
		Bounties:    prev.Bounties,
		Quests:      append(fresh, prev.Quests...),
		Disputes:    prev.Disputes,
		EntryCounts: entryCounts,
		TakenAt:     time.Now(),
	}
	a.snapshot.Store(next)
	a.indexForSearch(ctx, nil, fresh)

	return nil
}

func (a *Aggregator) TopUpDisputes(ctx context.Context) error {
	a.reload.Lock()
	defer a.reload.Unlock()

	counter, err := a.dispute.DisputeCounter(ctx)
	if err != nil {
		return err
	}

	prev := a.snapshot.Load()
	highest := int64(0)
	if len(prev.Disputes) > 0 {
		highest = prev.Disputes[0].OnChainID
	}

	n := counter.Int64()
	if n <= highest {
		return nil
	}

	fresh := make([]entity.Dispute, 0, n-highest)
	for id := highest + 1; id <= n; id++ {
		dispute, votes := a.fetcher.FetchDispute(ctx, id)
		if dispute == nil {
			continue
		}

		if err := a.disputeRepo.Upsert(ctx, dispute, votes); err != nil {
			return err
		}

		dispute.Votes = votes
		fresh = append(fresh, *dispute)
	}

	sortDisputesDesc(fresh)

	next := &Snapshot{
		Bounties:    prev.Bounties,
		Quests:      prev.Quests,
		Disputes:    append(fresh, prev.Disputes...),
		EntryCounts: prev.EntryCounts,
		TakenAt:     time.Now(),
	}
	a.snapshot.Store(next)

	return nil
}

func attachSubmissions(bounties []entity.Bounty, submissions []entity.BountySubmission) []entity.Bounty {
	byBounty := make(map[int64][]entity.BountySubmission)
	for _, sub := range submissions {
		byBounty[sub.BountyOnChainID] = append(byBounty[sub.BountyOnChainID], sub)
	}

	for i := range bounties {
		bounties[i].Submissions = byBounty[bounties[i].OnChainID]
	}

	return bounties
}

func attachEntries(quests []entity.Quest, entries []entity.QuestEntry) []entity.Quest {
	byQuest := make(map[int64][]entity.QuestEntry)
	for _, entry := range entries {
		byQuest[entry.QuestOnChainID] = append(byQuest[entry.QuestOnChainID], entry)
	}

	for i := range quests {
		quests[i].Entries = byQuest[quests[i].OnChainID]
	}

	return quests
}

func attachVotes(disputes []entity.Dispute, votes []entity.DisputeVote) []entity.Dispute {
	byDispute := make(map[int64][]entity.DisputeVote)
	for _, vote := range votes {
		byDispute[vote.DisputeOnChainID] = append(byDispute[vote.DisputeOnChainID], vote)
	}

	for i := range disputes {
		disputes[i].Votes = byDispute[disputes[i].OnChainID]
	}

	return disputes
}

func sortBountiesDesc(bounties []entity.Bounty) {
	sort.Slice(bounties, func(i, j int) bool {
		return bounties[i].OnChainID > bounties[j].OnChainID
	})
}

func sortQuestsDesc(quests []entity.Quest) {
	sort.Slice(quests, func(i, j int) bool {
		return quests[i].OnChainID > quests[j].OnChainID
	})
}

func sortDisputesDesc(disputes []entity.Dispute) {
	sort.Slice(disputes, func(i, j int) bool {
		return disputes[i].OnChainID > disputes[j].OnChainID
	})
}
