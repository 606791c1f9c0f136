package reason

// Topic tags produced by the default rules.
const (
	TopicBDI            = "topic:bdi"
	TopicAuctions       = "topic:auctions"
	TopicSwarm          = "topic:swarm"
	TopicPatterns       = "topic:patterns"
	TopicMessaging      = "topic:messaging"
	TopicCognition      = "topic:cognition"
	TopicRuntime        = "topic:runtime"
	TopicGettingStarted = "topic:getting_started"
	TopicWhyRust        = "topic:why_rust"
	TopicExamples       = "topic:examples"
	TopicWhatIs         = "topic:what_is"
	TopicUnknown        = "unknown"
)

// DefaultEngine registers the topic rules, specific vocabularies first and
// the broad "what is" catch-all last.
func DefaultEngine() *Engine {
	return NewEngine(
		NewRule(TopicBDI, []string{"bdi", "belief", "desire", "intention"}, TopicBDI),
		NewRule(TopicAuctions, []string{"auction", "market", "bid", "english", "dutch", "vickrey"}, TopicAuctions),
		NewRule(TopicSwarm, []string{"swarm", "flock", "consensus", "drone", "foraging"}, TopicSwarm),
		NewRule(TopicPatterns, []string{"pattern", "hierarchy", "coalition", "federation", "team", "holarchy", "blackboard", "organization"}, TopicPatterns),
		NewRule(TopicMessaging, []string{"message", "messaging", "router", "performative", "fipa", "communicate", "communication"}, TopicMessaging),
		NewRule(TopicCognition, []string{"cognition", "reasoning", "planning", "utility", "thinking", "decision", "intelligence"}, TopicCognition),
		NewRule(TopicRuntime, []string{"runtime", "supervisor", "circuit", "metric", "scheduler", "health", "restart"}, TopicRuntime),
		NewRule(TopicGettingStarted, []string{"start", "install", "setup", "begin", "tutorial", "beginner", "learn"}, TopicGettingStarted),
		NewRule(TopicWhyRust, []string{"rust", "performance", "safe", "safety", "fast", "speed"}, TopicWhyRust),
		NewRule(TopicExamples, []string{"example", "demo", "sample", "code", "show"}, TopicExamples),
		NewRule(TopicWhatIs, []string{"what", "who", "about", "agentropic", "explain", "tell"}, TopicWhatIs),
	)
}
