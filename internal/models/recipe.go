// Package models defines the domain types for the chihom site.
package models

// RecipeCategory groups menu items (主食, 汤品, ...).
type RecipeCategory struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// Ingredient is one line of a recipe's ingredient list.
// Amount is free-form ("300g", "适量").
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Amount string `json:"amount" yaml:"amount"`
	Unit   string `json:"unit" yaml:"unit"`
}

// Recipe is a menu item together with its cooking instructions.
type Recipe struct {
	ID          int          `json:"id" yaml:"id"`
	CategoryID  string       `json:"categoryId" yaml:"categoryId"`
	Name        string       `json:"name" yaml:"name"`
	Price       float64      `json:"price" yaml:"price"`
	Image       string       `json:"image" yaml:"image"`
	Description string       `json:"description" yaml:"description"`
	Spicy       int          `json:"spicy" yaml:"spicy"` // 0-3
	Popular     bool         `json:"popular" yaml:"popular"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Tutorial    []string     `json:"tutorial" yaml:"tutorial"`
}
