// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package catalog

import "fmt"

func minutes(m int) *int {
	return &m
}

// DefaultActivities returns the built-in activity list in catalog order.
// Catalog order breaks score ties, so entries must not be reordered.
func DefaultActivities() []Activity {
	return []Activity{
		{ID: "a1", Title: "5-min Guided Breathing", Tags: []string{TagBreathing, TagMindfulness}, Minutes: minutes(5)},
		{ID: "a2", Title: "10-min Mindfulness Meditation", Tags: []string{TagMindfulness, TagJournaling}, Minutes: minutes(10)},
		{ID: "a3", Title: "20-min Walk / Light Exercise", Tags: []string{TagExercise, TagSocial}, Minutes: minutes(20)},
		{ID: "a4", Title: "Sleep Hygiene Checklist", Tags: []string{TagSleep, TagTimeManagement}, Minutes: minutes(10)},
		{ID: "a5", Title: "Gratitude Journaling", Tags: []string{TagJournaling, TagMindfulness}, Minutes: minutes(10)},
		{ID: "a6", Title: "Healthy Snack Suggestions", Tags: []string{TagNutrition}, Minutes: minutes(5)},
		{ID: "a7", Title: "Pomodoro Focus Session", Tags: []string{TagTimeManagement}, Minutes: minutes(25)},
		{ID: "a8", Title: "Message a Friend", Tags: []string{TagSocial}, Minutes: minutes(5)},
		{ID: "a9", Title: "Therapist Resources", Tags: []string{TagTherapy}, Minutes: minutes(2)},
		{ID: "a10", Title: "Yoga Stretches", Tags: []string{TagExercise, TagMindfulness}, Minutes: minutes(15)},
		{ID: "a11", Title: "Read a Book Chapter", Tags: []string{TagMindfulness}, Minutes: minutes(15)},
		{ID: "a12", Title: "Hydration Reminder", Tags: []string{TagNutrition}, Minutes: minutes(1)},
		{ID: "a13", Title: "Digital Detox (1 hr)", Tags: []string{TagTimeManagement, TagSleep}, Minutes: minutes(60)},
		{ID: "a14", Title: "Listen to Calming Music", Tags: []string{TagMindfulness, TagBreathing}, Minutes: minutes(10)},
		{ID: "a15", Title: "Plan Tomorrow's Tasks", Tags: []string{TagTimeManagement, TagJournaling}, Minutes: minutes(10)},
		{ID: "a16", Title: "Quick HIIT Workout", Tags: []string{TagExercise}, Minutes: minutes(10)},
		{ID: "a17", Title: "Cook a Healthy Meal", Tags: []string{TagNutrition, TagMindfulness}, Minutes: minutes(30)},
		{ID: "a18", Title: "Join a Club/Group", Tags: []string{TagSocial}, Minutes: minutes(60)},
		{ID: "a19", Title: "No-Screen Before Bed", Tags: []string{TagSleep}, Minutes: minutes(30)},
		{ID: "a20", Title: "Progressive Muscle Relaxation", Tags: []string{TagBreathing, TagTherapy}, Minutes: minutes(15)},
		{ID: "a21", Title: "Watch a Funny Video", Tags: []string{TagSocial, TagMindfulness}, Minutes: minutes(5)},
		{ID: "a22", Title: "Deep Work Session", Tags: []string{TagTimeManagement}, Minutes: minutes(50)},
		{ID: "a23", Title: "Express Feelings Artistically", Tags: []string{TagJournaling, TagTherapy}, Minutes: minutes(20)},
		{ID: "a24", Title: "Call a Family Member", Tags: []string{TagSocial}, Minutes: minutes(10)},
		{ID: "a25", Title: "Power Nap", Tags: []string{TagSleep}, Minutes: minutes(20)},
	}
}

// Default builds the built-in catalog over the default vocabulary.
func Default() *Catalog {
	c, err := New(DefaultVocabulary(), DefaultActivities())
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in catalog: %v", err))
	}
	return c
}
