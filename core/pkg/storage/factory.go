package storage

import "fmt"

// Constructor builds a backend for one storage type.
type Constructor func(config FactoryConfig) (Backend, error)

// RegistryFactory implements Factory by dispatching on the storage type to
// constructors registered by the backend packages' callers.
type RegistryFactory struct {
	constructors map[StorageType]Constructor
	order        []StorageType
}

// NewFactory creates an empty factory.
func NewFactory() *RegistryFactory {
	return &RegistryFactory{constructors: make(map[StorageType]Constructor)}
}

// Register adds a constructor for storageType.
func (f *RegistryFactory) Register(storageType StorageType, constructor Constructor) *RegistryFactory {
	if _, exists := f.constructors[storageType]; !exists {
		f.order = append(f.order, storageType)
	}
	f.constructors[storageType] = constructor
	return f
}

// CreateBackend validates config and builds the matching backend.
func (f *RegistryFactory) CreateBackend(config FactoryConfig) (Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}
	constructor, ok := f.constructors[config.Type]
	if !ok {
		return nil, fmt.Errorf("storage backend %s is not available", config.Type)
	}
	return constructor(config)
}

// SupportedBackends returns the registered storage types
func (f *RegistryFactory) SupportedBackends() []StorageType {
	return append([]StorageType(nil), f.order...)
}
