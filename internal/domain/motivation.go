package domain

// Tier is a qualitative band of goal completion.
type Tier int

// Tiers ordered from lowest to highest completion.
const (
	TierLow Tier = iota
	TierStarted
	TierMidway
	TierNearGoal
	TierGoalMet
	TierExcess
	TierCriticalExcess
)

var tierMessages = map[Tier]string{
	TierCriticalExcess: "That is far over your goal. Too much water can be harmful too, so try to stay close to your target.",
	TierExcess:         "Great that you keep an eye on your water balance! But remember that excess water can be harmful as well. Try to stick to your goal.",
	TierGoalMet:        "Excellent! You reached your goal for today! Keep it up!",
	TierNearGoal:       "Almost there! You are very close to your goal. Next time you will surely make it!",
	TierMidway:         "Not bad! You are on the right track. Try to drink a little more water tomorrow!",
	TierStarted:        "A good start! Try to increase the amount of water next time.",
	TierLow:            "Do not forget to drink water! It matters for your health. Let's try to reach the goal tomorrow!",
}

// Classify maps a completion percentage to its tier and message.
// Boundaries are evaluated highest-first: >150, >100, =100, >=80,
// >=50, >=30, everything below is TierLow.
func Classify(percentage float64) (Tier, string) {
	var tier Tier
	switch {
	case percentage > 150:
		tier = TierCriticalExcess
	case percentage > 100:
		tier = TierExcess
	case percentage == 100:
		tier = TierGoalMet
	case percentage >= 80:
		tier = TierNearGoal
	case percentage >= 50:
		tier = TierMidway
	case percentage >= 30:
		tier = TierStarted
	default:
		tier = TierLow
	}
	return tier, tierMessages[tier]
}

// MotivationMessage returns just the message for a completion
// percentage.
func MotivationMessage(percentage float64) string {
	_, msg := Classify(percentage)
	return msg
}
