package storage

type Storage struct {
	basePath string
	key      []byte
}
