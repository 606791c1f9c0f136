package respond

import "fmt"

// Knowledge is a read-only key to fact-text store used to compose replies.
type Knowledge map[string]string

// Lookup returns the fact for key, or a placeholder naming the missing key.
func (k Knowledge) Lookup(key string) string {
	if v, ok := k[key]; ok {
		return v
	}
	return fmt.Sprintf("(no info on '%s')", key)
}

// DefaultKnowledge describes the Agentropic framework.
func DefaultKnowledge() Knowledge {
	return Knowledge{
		"what_is_agentropic": "Agentropic is a modular multi-agent framework for Rust. It provides agent lifecycles, messaging, cognition, organizational patterns, and supervised runtime execution.",
		"modular":            "Use only what you need. A simple agent needs only agentropic-core. Complex systems compose all five crates.",
		"messaging":          "Agents communicate through a Router using typed Messages with FIPA performatives like Inform, Request, Propose, Accept, and Reject.",
		"performatives":      "Supported FIPA performatives: Inform, Request, Query, Propose, Accept, Reject, Confirm, Disconfirm, Subscribe, CFP, Refuse.",
		"cognition_crate":    "agentropic-cognition provides BDI architecture (beliefs, desires, intentions), planning, reasoning, and utility functions.",
		"utility":            "UtilityFunction maps states to numerical scores for strategy evaluation and decision making.",
		"bdi":                "BDI stands for Belief-Desire-Intention. It's a cognitive architecture where agents maintain beliefs about the world, desires they want to achieve, and intentions they're pursuing.",
		"beliefs":            "BeliefBase is a queryable knowledge store. Agents add, query, and remove beliefs as they learn about their environment.",
		"patterns":           "Agentropic supports 8 organizational patterns: Hierarchy, Swarm, Coalition, Market, Blackboard, Federation, Holarchy, and Team.",
		"swarm":              "Swarm pattern: decentralized coordination with flocking (separation, alignment, cohesion), foraging, and consensus voting.",
		"market":             "Market pattern: resource allocation via auctions. Supports English, Dutch, Vickrey, and sealed-bid auction types.",
		"runtime_crate":      "agentropic-runtime provides scheduling, supervision, circuit breakers, metrics, and agent isolation.",
		"supervisor":         "Supervisor monitors agent health and applies restart policies: Never, Always, OnFailure, or ExponentialBackoff.",
		"circuit_breaker":    "CircuitBreaker prevents cascading failures. States: Closed (normal), Open (blocking), HalfOpen (testing recovery).",
		"metrics":            "MetricsRegistry collects Counter, Gauge, and Histogram metrics with label support and JSON export.",
		"install":            "Add agentropic-core to your Cargo.toml dependencies. Use async-trait and tokio for async support.",
		"examples":           "8 working examples are available at https://github.com/agentropic/agentropic-examples covering all 5 crates.",
		"docs":               "Documentation is available at https://github.com/agentropic/agentropic-docs",
		"why_rust":           "Rust gives Agentropic type safety, zero-cost abstractions, fearless concurrency, and no garbage collector pauses.",
		"design":             "Agentropic uses composition over inheritance, async-first design, zero-cost patterns, and fail-graceful architecture.",
	}
}
