package stakingclient

const stakingManagerABI = `[
	{"type":"function","name":"totalStaked","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"stakedBalances","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"cooldownPeriod","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"pendingWithdrawals","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"amount","type":"uint256"},{"name":"timestamp","type":"uint256"}]},
	{"type":"function","name":"rewardTypesCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"rewardTypes","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"name":"rewardToken","type":"address"},{"name":"rewardPool","type":"address"},{"name":"isActive","type":"bool"},{"name":"rewardIntegral","type":"uint256"}]},
	{"type":"function","name":"earned","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"claimable","type":"tuple[]","components":[{"name":"rewardToken","type":"address"},{"name":"rewardAmount","type":"uint256"}]}]},
	{"type":"function","name":"stake","stateMutability":"nonpayable","inputs":[{"name":"wad","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"initiateWithdrawal","stateMutability":"nonpayable","inputs":[{"name":"wad","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"cancelWithdrawal","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"getReward","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]}
]`

const rewardPoolABI = `[
	{"type":"function","name":"rewardRate","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const distributorABI = `[
	{"type":"function","name":"isClaimed","stateMutability":"view","inputs":[{"name":"root","type":"bytes32"},{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"claim","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"},{"name":"proof","type":"bytes32[]"}],"outputs":[]},
	{"type":"function","name":"claimMultiple","stateMutability":"nonpayable","inputs":[{"name":"tokens","type":"address[]"},{"name":"amounts","type":"uint256[]"},{"name":"proofs","type":"bytes32[][]"}],"outputs":[]}
]`
