package helper

import (
	"context"
	"encoding/json"
	"fmt"
	contentModel "oec/internal/domains/content/model"
	contentRepo "oec/internal/domains/content/repository"
	facilityModel "oec/internal/domains/facility/model"
	facilityRepo "oec/internal/domains/facility/repository"
	postModel "oec/internal/domains/post/model"
	postRepo "oec/internal/domains/post/repository"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/model"
	"oec/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/rs/zerolog/log"
)

const seedUser = "seed"

const (
	dormitoryFloors        = 3
	dormitoryRoomsPerFloor = 4
	dormitoryBeds          = 4
)

// SeedDormitories inserts the dormitory rooms of both buildings that do not exist yet.
// Rooms without a rental cost are priced from the dormitory default.
func SeedDormitories(ctx context.Context, repo facilityRepo.Facility) (int, error) {
	now := timezone.Now()

	var missing []facilityModel.Facility

	for _, building := range []string{constant.BuildingA, constant.BuildingB} {
		for floor := 1; floor <= dormitoryFloors; floor++ {
			for room := 1; room <= dormitoryRoomsPerFloor; room++ {
				name := fmt.Sprintf("%s Room %d%02d", buildingLabel(building), floor, room)

				exist, err := repo.Exist(ctx, nameFilter(facilityModel.FieldName, name))
				if err != nil {
					return 0, fmt.Errorf("checking dormitory %q: %w", name, err)
				}

				if exist {
					continue
				}

				missing = append(missing, facilityModel.Facility{
					ID:          uuid.NewString(),
					Name:        name,
					Category:    facilityModel.CategoryDormitory,
					Building:    building,
					Capacity:    dormitoryBeds,
					Beds:        dormitoryBeds,
					Floor:       floor,
					Description: "Shared dormitory room with bunk beds and lockers.",
					Active:      true,
					Metadata:    model.NewMetadata(seedUser, now),
				})
			}
		}
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := repo.InsertBulk(ctx, missing); err != nil {
		return 0, fmt.Errorf("inserting dormitories: %w", err)
	}

	log.Info().Int("count", len(missing)).Msg("Seeded dormitories")

	return len(missing), nil
}

// SeedPosts inserts the welcome posts whose slug is still free.
func SeedPosts(ctx context.Context, repo postRepo.Post) (int, error) {
	now := timezone.Now()

	samples := []struct {
		title   string
		excerpt string
		body    string
	}{
		{
			title:   "Welcome to the Oromia Education Center",
			excerpt: "Halls, sections and dormitories are now bookable online.",
			body:    "Pick your dates, choose a hall or dormitory room and submit the booking. Our team confirms payment and sends the agreement.",
		},
		{
			title:   "Paying by bank transfer",
			excerpt: "Upload your transfer slip to move the booking to verification.",
			body:    "After transferring the total, open the booking and upload the payment proof. An administrator verifies it within one working day.",
		},
	}

	var missing []postModel.Post

	for _, sample := range samples {
		slug := postModel.Slugify(sample.title)

		exist, err := repo.Exist(ctx, nameFilter(postModel.FieldSlug, slug))
		if err != nil {
			return 0, fmt.Errorf("checking post %q: %w", slug, err)
		}

		if exist {
			continue
		}

		publishedAt := now

		missing = append(missing, postModel.Post{
			ID:          uuid.NewString(),
			Title:       sample.title,
			Slug:        slug,
			Excerpt:     sample.excerpt,
			Body:        sample.body,
			Published:   true,
			PublishedAt: &publishedAt,
			Metadata:    model.NewMetadata(seedUser, now),
		})
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := repo.InsertBulk(ctx, missing); err != nil {
		return 0, fmt.Errorf("inserting posts: %w", err)
	}

	log.Info().Int("count", len(missing)).Msg("Seeded posts")

	return len(missing), nil
}

// SeedContents creates the editable site documents that are still missing, at version 1.
func SeedContents(ctx context.Context, repo contentRepo.Content) (int, error) {
	now := timezone.Now()

	defaults := map[string]any{
		contentModel.KeySite: map[string]any{
			"headline": "Oromia Education Center",
			"tagline":  "Meeting halls and dormitories in Building A and Building B",
		},
		contentModel.KeyAnnouncements: []any{},
		contentModel.KeyAgreementTemplate: map[string]any{
			"title": "Facility rental agreement",
			"body":  "",
		},
		contentModel.KeyBrand: map[string]any{
			"name":          "Oromia Education Center",
			"primary_color": "#0B6E4F",
		},
	}

	seeded := 0

	for _, key := range contentModel.Keys {
		current, err := repo.Get(ctx, nameFilter(contentModel.FieldKey, key))
		if err != nil {
			return seeded, fmt.Errorf("checking content %q: %w", key, err)
		}

		if current.Key != "" {
			continue
		}

		body, err := json.Marshal(defaults[key])
		if err != nil {
			return seeded, fmt.Errorf("encoding content %q: %w", key, err)
		}

		err = repo.Insert(ctx, contentModel.Content{
			Key:      key,
			Body:     types.JSONText(body),
			Version:  1,
			Metadata: model.NewMetadata(seedUser, now),
		})
		if err != nil {
			return seeded, fmt.Errorf("inserting content %q: %w", key, err)
		}

		seeded++
	}

	log.Info().Int("count", seeded).Msg("Seeded site contents")

	return seeded, nil
}

func nameFilter(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Operator: gDto.FilterOperatorEq, Value: value},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func buildingLabel(building string) string {
	if building == constant.BuildingB {
		return "B"
	}

	return "A"
}
