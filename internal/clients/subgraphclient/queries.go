package subgraphclient

const pricesQuery = `query Prices {
  collateralTypes(first: 100) { id currentPrice { value } }
  systemStates(first: 1) { currentRedemptionPrice { value } }
}`

const boostInputsQuery = `query BoostInputs($owner: String!) {
  systemStates(first: 1) { globalDebt currentRedemptionPrice { value } }
  collateralTypes(where: { id: "HAIVELO" }) { totalCollateral currentPrice { value } }
  safes(first: 1000, where: { owner_: { address: $owner } }) { debt collateral collateralType { id } }
}`

const haiVeloParticipationQuery = `query HaiVeloParticipation {
  safes(first: 1000, where: { collateralType: "HAIVELO", collateral_gt: "0" }) { collateral owner { address } }
  stakingUsers(first: 1000, where: { stakedBalance_gt: "0" }) { id stakedBalance }
  haiVeloRewardTransfers(first: 1, orderBy: timestamp, orderDirection: desc) { amount }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type priceValue struct {
	Value string `json:"value"`
}

type systemState struct {
	GlobalDebt             string     `json:"globalDebt"`
	CurrentRedemptionPrice priceValue `json:"currentRedemptionPrice"`
}

type collateralType struct {
	ID              string     `json:"id"`
	TotalCollateral string     `json:"totalCollateral"`
	CurrentPrice    priceValue `json:"currentPrice"`
}

type pricesData struct {
	CollateralTypes []collateralType `json:"collateralTypes"`
	SystemStates    []systemState    `json:"systemStates"`
}

type safe struct {
	Debt           string `json:"debt"`
	Collateral     string `json:"collateral"`
	CollateralType struct {
		ID string `json:"id"`
	} `json:"collateralType"`
	Owner struct {
		Address string `json:"address"`
	} `json:"owner"`
}

type boostInputsData struct {
	SystemStates    []systemState    `json:"systemStates"`
	CollateralTypes []collateralType `json:"collateralTypes"`
	Safes           []safe           `json:"safes"`
}

type stakingUser struct {
	ID            string `json:"id"`
	StakedBalance string `json:"stakedBalance"`
}

type rewardTransfer struct {
	Amount string `json:"amount"`
}

type participationData struct {
	Safes                  []safe           `json:"safes"`
	StakingUsers           []stakingUser    `json:"stakingUsers"`
	HaiVeloRewardTransfers []rewardTransfer `json:"haiVeloRewardTransfers"`
}
