package fuzztests

import "testing"

const maxFuzzInput = 64 << 10

var seeds = []string{
	"",
	"namespace App { public class Point { public int X; } }",
	"class A { void M() { var x = 1; x += 2; } }",
	"class A { int x = ; }",
	"namespace App { public class A { public int X } }",
	"enum Color { Red, Green = 4, Blue }",
	"interface IShape { double Area(); }\nclass Circle : IShape { public double Area() { return 3.14; } }",
	"class G<T> where T : class { T Get(T value) => value; }",
	"class A { void M() { foreach (var s in new[] { \"a\" }) { System.Console.WriteLine(s); } } }",
	"class A { void M() { try { } catch (System.Exception e) { throw; } finally { } } }",
	"class A { int P { get; set; } = 3; static A() { } }",
	"class A { void M() { switch (1) { case 1: break; default: return; } } }",
	"class A { void M() { System.Func<int, int> f = x => x / 2; } }",
	"partial class P { } partial class P { int y; }",
	"class { } } {{ ;;",
	"/// <summary>doc</summary>\nclass D { }",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
