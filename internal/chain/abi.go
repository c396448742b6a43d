package chain

// Read-method ABIs of the four deployed contracts. Only the view surface the
// indexer needs is declared here, not the full contract interface.

const quintyAbiJSON = `[
	{"type":"function","name":"bountyCounter","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getBounty","stateMutability":"view",
	 "inputs":[{"name":"bountyId","type":"uint256"}],
	 "outputs":[
		{"name":"creator","type":"address"},
		{"name":"metadataCid","type":"string"},
		{"name":"token","type":"address"},
		{"name":"totalAmount","type":"uint256"},
		{"name":"prizes","type":"uint256[]"},
		{"name":"openDeadline","type":"uint256"},
		{"name":"judgingDeadline","type":"uint256"},
		{"name":"slashPercent","type":"uint256"},
		{"name":"status","type":"uint8"},
		{"name":"submissionCount","type":"uint256"},
		{"name":"totalDeposits","type":"uint256"},
		{"name":"winners","type":"address[]"}
	 ]},
	{"type":"function","name":"getSubmission","stateMutability":"view",
	 "inputs":[{"name":"bountyId","type":"uint256"},{"name":"index","type":"uint256"}],
	 "outputs":[
		{"name":"submitter","type":"address"},
		{"name":"ipfsCid","type":"string"},
		{"name":"deposit","type":"uint256"},
		{"name":"timestamp","type":"uint256"}
	 ]}
]`

const questAbiJSON = `[
	{"type":"function","name":"questCounter","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getQuest","stateMutability":"view",
	 "inputs":[{"name":"questId","type":"uint256"}],
	 "outputs":[
		{"name":"creator","type":"address"},
		{"name":"title","type":"string"},
		{"name":"description","type":"string"},
		{"name":"totalAmount","type":"uint256"},
		{"name":"perQualifier","type":"uint256"},
		{"name":"maxQualifiers","type":"uint256"},
		{"name":"qualifiersCount","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"createdAt","type":"uint256"},
		{"name":"resolved","type":"bool"},
		{"name":"cancelled","type":"bool"},
		{"name":"requirements","type":"string[]"},
		{"name":"imageUrl","type":"string"}
	 ]},
	{"type":"function","name":"getEntry","stateMutability":"view",
	 "inputs":[{"name":"questId","type":"uint256"},{"name":"index","type":"uint256"}],
	 "outputs":[
		{"name":"solver","type":"address"},
		{"name":"ipfsProofCid","type":"string"},
		{"name":"timestamp","type":"uint256"},
		{"name":"status","type":"uint8"},
		{"name":"feedback","type":"string"}
	 ]}
]`

const disputeAbiJSON = `[
	{"type":"function","name":"disputeCounter","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getDispute","stateMutability":"view",
	 "inputs":[{"name":"disputeId","type":"uint256"}],
	 "outputs":[
		{"name":"bountyId","type":"uint256"},
		{"name":"isExpiry","type":"bool"},
		{"name":"amount","type":"uint256"},
		{"name":"votingEnd","type":"uint256"},
		{"name":"voteCount","type":"uint256"},
		{"name":"resolved","type":"bool"}
	 ]},
	{"type":"function","name":"getVote","stateMutability":"view",
	 "inputs":[{"name":"disputeId","type":"uint256"},{"name":"index","type":"uint256"}],
	 "outputs":[
		{"name":"voter","type":"address"},
		{"name":"stake","type":"uint256"},
		{"name":"rankedSubIds","type":"uint256[]"}
	 ]}
]`

const reputationAbiJSON = `[
	{"type":"function","name":"statsOf","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[
		{"name":"bountiesCreated","type":"uint256"},
		{"name":"submissions","type":"uint256"},
		{"name":"wins","type":"uint256"}
	 ]},
	{"type":"function","name":"achievementsOf","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"tokenIds","type":"uint256[]"}]}
]`
