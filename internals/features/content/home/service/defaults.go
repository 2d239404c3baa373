package service

import (
	"basamu_backend/internals/features/content/home/dto"
	"basamu_backend/internals/features/content/home/model"
)

// DefaultContent is served while no home_content row has been provisioned.
var DefaultContent = model.HomeContentModel{
	HomeHeroTitle:    "Welcome to BASAMU",
	HomeHeroSubtitle: "Banyankore Students Association at Muni University.",
	HomeMissionText: "BASAMU is dedicated to celebrating, preserving, and promoting the rich cultural heritage of Western Uganda. " +
		"We bring together students at Muni University to foster unity, showcase our traditions, and create lasting " +
		"bonds through cultural events, educational initiatives, and community engagement.",
	HomeVisionText: "A united community of Banyankore students carrying the culture of Ankole forward with pride.",
	HomeSlogan:     "Obumwe n'Amaani",
}

// PlaceholderGallery points at images bundled with the site frontend.
var PlaceholderGallery = []dto.GalleryItem{
	{ImageURL: "/assets/gallery-1.jpg", Caption: "Traditional celebration with vibrant cultural attire"},
	{ImageURL: "/assets/gallery-2.jpg", Caption: "Handcrafted baskets and pottery showcasing our artisan heritage"},
	{ImageURL: "/assets/gallery-3.jpg", Caption: "Western Uganda landscape at golden hour"},
}
