package repository

import (
	"context"
	"testing"

	"monkmode/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepository_CreateLoadsBlocksOrdered(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "tpl1", Email: "tpl1@e.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	template := &models.Template{
		UserID: u.ID,
		Title:  "Monk morning",
		TemplateBlocks: []models.TemplateBlock{
			{Title: "Break", StartTime: 600, EndTime: 630},
			{Title: "Deep work", StartTime: 480, EndTime: 600, IsFocus: true},
		},
	}
	require.NoError(t, repo.Create(ctx, template))

	loaded, err := repo.GetByID(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, loaded.TemplateBlocks, 2)
	assert.Equal(t, "Deep work", loaded.TemplateBlocks[0].Title)
	assert.Equal(t, "Break", loaded.TemplateBlocks[1].Title)
}

func TestTemplateRepository_UpdateReplacesBlocks(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "tpl2", Email: "tpl2@e.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	template := &models.Template{
		UserID: u.ID,
		Title:  "Old",
		TemplateBlocks: []models.TemplateBlock{
			{Title: "Stale A", StartTime: 0, EndTime: 60},
			{Title: "Stale B", StartTime: 60, EndTime: 120},
		},
	}
	require.NoError(t, repo.Create(ctx, template))

	template.Title = "New"
	template.TemplateBlocks = []models.TemplateBlock{
		{TemplateID: template.ID, Title: "Fresh", StartTime: 480, EndTime: 540},
	}
	require.NoError(t, repo.Update(ctx, template))

	loaded, err := repo.GetByID(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", loaded.Title)
	require.Len(t, loaded.TemplateBlocks, 1)
	assert.Equal(t, "Fresh", loaded.TemplateBlocks[0].Title)

	// No orphaned blocks remain.
	var count int64
	db.Model(&models.TemplateBlock{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestTemplateRepository_DeleteCascadesBlocks(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "tpl3", Email: "tpl3@e.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	template := &models.Template{
		UserID: u.ID,
		Title:  "Doomed",
		TemplateBlocks: []models.TemplateBlock{
			{Title: "Block", StartTime: 480, EndTime: 540},
		},
	}
	require.NoError(t, repo.Create(ctx, template))
	require.NoError(t, repo.Delete(ctx, template.ID))

	_, err := repo.GetByID(ctx, template.ID)
	require.Error(t, err)

	var count int64
	db.Model(&models.TemplateBlock{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
