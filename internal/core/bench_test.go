package core

import (
	"context"
	"testing"
)

func benchmarkAppend(b *testing.B, capacity int) {
	ml, err := NewMessageLog(capacity)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = ml.Append("bench", "payload")
	}
}

func BenchmarkAppend_10(b *testing.B)   { benchmarkAppend(b, 10) }
func BenchmarkAppend_100(b *testing.B)  { benchmarkAppend(b, 100) }
func BenchmarkAppend_1000(b *testing.B) { benchmarkAppend(b, 1000) }

func BenchmarkReadFullLog(b *testing.B) {
	ml, err := NewMessageLog(DefaultCapacity)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < DefaultCapacity; i++ {
		_ = ml.Append("bench", "payload")
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = ml.Read()
	}
}

func BenchmarkContendedReadAppend(b *testing.B) {
	ml, err := NewMessageLog(DefaultCapacity)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		i := 0
		for pb.Next() {
			switch i % 3 {
			case 0:
				_ = ml.Read()
			case 1:
				_ = ml.Append("bench", "payload")
			default:
				_ = ml.AppendTyped(ctx, "bench", LiteralSource("typed"), 0, nil)
			}
			i++
		}
	})
}
