package models

import "slices"

var validBreeds = []string{
	"Abyssinian", "Aegean", "American Bobtail", "American Curl", "American Shorthair",
	"American Wirehair", "Arabian Mau", "Australian Mist", "Balinese", "Bambino",
	"Bengal", "Birman", "Bombay", "British Longhair", "British Shorthair",
	"Burmese", "Burmilla", "California Spangled", "Chantilly-Tiffany", "Chartreux",
	"Chausie", "Cheetoh", "Colorpoint Shorthair", "Cornish Rex", "Cymric",
	"Cyprus", "Devon Rex", "Donskoy", "Dragon Li", "Egyptian Mau", "European Burmese",
	"Exotic Shorthair", "Havana Brown", "Himalayan", "Japanese Bobtail", "Javanese",
	"Khao Manee", "Korat", "Kurilian", "LaPerm", "Maine Coon", "Malayan",
	"Manx", "Munchkin", "Nebelung", "Norwegian Forest Cat", "Ocicat",
	"Oriental", "Persian", "Pixie-bob", "Ragamuffin", "Ragdoll",
	"Russian Blue", "Savannah", "Scottish Fold", "Selkirk Rex", "Siamese",
	"Siberian", "Singapura", "Snowshoe", "Somali", "Sphynx",
	"Tonkinese", "Toyger", "Turkish Angora", "Turkish Van", "York Chocolate",
}

// Breeds returns the accepted breed names in display order.
func Breeds() []string {
	return slices.Clone(validBreeds)
}

func IsValidBreed(breed string) bool {
	return slices.Contains(validBreeds, breed)
}
