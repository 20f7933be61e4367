package loader_test

import "os"

func writeTemp(text string) string {
	f, err := os.CreateTemp("", "spimdf-program-*.txt")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(text); err != nil {
		panic(err)
	}
	f.Close()
	return f.Name()
}

func removeTemp(path string) {
	os.Remove(path)
}
