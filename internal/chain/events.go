package chain

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type EventKind string

const (
	// EventKindCreation increments an entity counter. Only the counter needs
	// re-reading, new ids are topped up incrementally.
	EventKindCreation = EventKind("creation")

	// EventKindStateChange mutates nested fields of an existing entity, so
	// the whole read-model is re-derived.
	EventKindStateChange = EventKind("state_change")
)

const (
	EventBountyCreated        = "BountyCreated"
	EventSubmissionCreated    = "SubmissionCreated"
	EventBountyMovedToJudging = "BountyMovedToJudging"
	EventWinnersSelected      = "WinnersSelected"
	EventBountySlashed        = "BountySlashed"
	EventAirdropCreated       = "AirdropCreated"
	EventEntrySubmitted       = "EntrySubmitted"
	EventEntryReviewed        = "EntryReviewed"
	EventDisputeOpened        = "DisputeOpened"
	EventVoteCast             = "VoteCast"
	EventAchievementUnlocked  = "AchievementUnlocked"
)

type Event struct {
	Name        string    `json:"name"`
	Kind        EventKind `json:"kind"`
	Contract    string    `json:"contract"`
	EntityID    int64     `json:"entity_id"`
	UserAddress string    `json:"user_address,omitempty"`
	TokenID     int64     `json:"token_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	TxHash      string    `json:"tx_hash"`
	BlockNumber uint64    `json:"block_number"`
}

type eventSpec struct {
	name      string
	kind      EventKind
	signature string
}

var eventSpecs = []eventSpec{
	{EventBountyCreated, EventKindCreation, "BountyCreated(uint256,address)"},
	{EventSubmissionCreated, EventKindStateChange, "SubmissionCreated(uint256,uint256,address)"},
	{EventBountyMovedToJudging, EventKindStateChange, "BountyMovedToJudging(uint256)"},
	{EventWinnersSelected, EventKindStateChange, "WinnersSelected(uint256,address[])"},
	{EventBountySlashed, EventKindStateChange, "BountySlashed(uint256)"},
	{EventAirdropCreated, EventKindCreation, "AirdropCreated(uint256,address)"},
	{EventEntrySubmitted, EventKindStateChange, "EntrySubmitted(uint256,uint256,address)"},
	{EventEntryReviewed, EventKindStateChange, "EntryReviewed(uint256,uint256,uint8)"},
	{EventDisputeOpened, EventKindCreation, "DisputeOpened(uint256,uint256)"},
	{EventVoteCast, EventKindStateChange, "VoteCast(uint256,address)"},
	{EventAchievementUnlocked, EventKindStateChange, "AchievementUnlocked(address,uint256,string)"},
}

var topicToSpec = func() map[common.Hash]eventSpec {
	m := make(map[common.Hash]eventSpec, len(eventSpecs))
	for _, spec := range eventSpecs {
		m[crypto.Keccak256Hash([]byte(spec.signature))] = spec
	}
	return m
}()

var stringArguments = func() abi.Arguments {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: stringType}}
}()

// ParseLog decodes a raw log into an Event. Logs whose topic is not one of
// the known signatures return false.
func ParseLog(log ethtypes.Log) (*Event, bool) {
	if len(log.Topics) == 0 {
		return nil, false
	}

	spec, ok := topicToSpec[log.Topics[0]]
	if !ok {
		return nil, false
	}

	event := &Event{
		Name:        spec.name,
		Kind:        spec.kind,
		Contract:    log.Address.Hex(),
		TxHash:      log.TxHash.Hex(),
		BlockNumber: log.BlockNumber,
	}

	switch spec.name {
	case EventAchievementUnlocked:
		if len(log.Topics) > 1 {
			event.UserAddress = common.HexToAddress(log.Topics[1].Hex()).Hex()
		}
		if len(log.Topics) > 2 {
			event.TokenID = log.Topics[2].Big().Int64()
		}
		if values, err := stringArguments.Unpack(log.Data); err == nil && len(values) == 1 {
			if name, ok := values[0].(string); ok {
				event.Detail = name
			}
		}

	default:
		if len(log.Topics) > 1 {
			event.EntityID = log.Topics[1].Big().Int64()
		}
	}

	return event, true
}
