package generated

// ERC20ABI is the subset of the ERC-20 interface used for balance reads and allowances.
const ERC20ABI = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// NFTABI is the mint entry point of the destination collection.
// mint pulls the price in stablecoin from the caller's allowance.
const NFTABI = `[
	{"inputs":[],"name":"mint","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// AccountFactoryABI is the read surface of the smart-account factory used to
// rebuild the proxy init code.
const AccountFactoryABI = `[
	{"inputs":[],"name":"accountCreationCode","outputs":[{"name":"","type":"bytes"}],"stateMutability":"pure","type":"function"},
	{"inputs":[],"name":"basicImplementation","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`
