package types

// PendingWithdrawal is stake flagged for exit that is still in its cooldown.
type PendingWithdrawal struct {
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// RewardAmount is an unclaimed reward balance for a single token.
type RewardAmount struct {
	TokenAddress Address `json:"tokenAddress"`
	Amount       string  `json:"amount"`
}

// StakedAccountState is the cached per-account staking view.
type StakedAccountState struct {
	StakedBalance     string             `json:"stakedBalance"`
	PendingWithdrawal *PendingWithdrawal `json:"pendingWithdrawal"`
	Rewards           []RewardAmount     `json:"rewards"`
	CooldownSeconds   int64              `json:"cooldownSeconds"`
}

// Clone returns a deep copy so cached snapshots never alias live state.
func (s *StakedAccountState) Clone() *StakedAccountState {
	if s == nil {
		return nil
	}
	out := *s
	if s.PendingWithdrawal != nil {
		pw := *s.PendingWithdrawal
		out.PendingWithdrawal = &pw
	}
	if s.Rewards != nil {
		out.Rewards = make([]RewardAmount, len(s.Rewards))
		copy(out.Rewards, s.Rewards)
	}
	return &out
}

// StakingStats is the global staking aggregate.
type StakingStats struct {
	TotalStaked string `json:"totalStaked"`
}

func (s *StakingStats) Clone() *StakingStats {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// RewardRate is the emission rate of one active reward pool.
type RewardRate struct {
	ID           uint64  `json:"id"`
	TokenAddress Address `json:"tokenAddress"`
	// Rate is tokens per second as a decimal string.
	Rate string `json:"rate"`
}

// MutationKind enumerates the staking actions the orchestrator understands.
type MutationKind string

const (
	MutationStake              MutationKind = "stake"
	MutationInitiateWithdrawal MutationKind = "initiate-withdrawal"
	MutationWithdraw           MutationKind = "withdraw"
	MutationCancelWithdrawal   MutationKind = "cancel-withdrawal"
	MutationClaimRewards       MutationKind = "claim-rewards"
)

func (k MutationKind) String() string {
	return string(k)
}
