package query

type ProviderHealth struct{}
