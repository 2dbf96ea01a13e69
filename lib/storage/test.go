package storage

import "os"

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

func NewTestMemoryLevelDBBackend() *LevelDBBackend {
	st := &LevelDBBackend{}
	if err := st.Init(&Config{Scheme: "memory"}); err != nil {
		panic(err)
	}

	return st
}
