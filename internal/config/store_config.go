package config

type StoreConfig interface {
	GetMongoURI() string
	GetRegistryDatabase() string
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetMongoURI() string {
	return GetEnv("MONGO_URI", "mongodb://localhost:27017")
}

func (Store) GetRegistryDatabase() string {
	return GetEnv("REGISTRY_DB", "org_registry")
}
