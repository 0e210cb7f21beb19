package models

type Network struct {
	ChainID      uint64
	Name         string
	Type         string
	RpcURL       string
	TokenAddress string
	Active       bool
}
