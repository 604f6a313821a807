package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

func TestStudentService_OwnershipIsEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")
	f.student(t, "marko")
	acme := f.company(t, "acme", "Acme")

	_, err := f.students.GetProfile(ctx, ana, "marko")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.students.UpdateProfile(ctx, ana, &dto.UpdateStudentProfileRequest{Username: "marko", About: "hacked"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.students.UploadProfileFile(ctx, ana, "marko", upload("x.png", "png"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.students.DeleteCV(ctx, ana, "marko")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.students.RegisterEvent(ctx, ana, &dto.EventRegistrationRequest{Username: "marko", EventID: 1})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.students.GetProfile(ctx, acme, "ana")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.students.GetProfile(ctx, nil, "ana")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestStudentService_UpdateProfileKeepsBlankFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")

	profile, err := f.students.UpdateProfile(ctx, ana, &dto.UpdateStudentProfileRequest{Username: "ana", About: "Loves Go"})
	require.NoError(t, err)
	assert.Equal(t, "Loves Go", profile.About)
	assert.Equal(t, "ana", profile.Name)
	assert.Equal(t, "UNIZG", profile.University)
}

func TestStudentService_UploadReplacesOnlySamePurpose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")

	first, err := f.students.UploadProfileFile(ctx, ana, "ana", upload("me.png", "first image"))
	require.NoError(t, err)
	assert.Equal(t, "profile_image", first.Field)

	cv, err := f.students.UploadProfileFile(ctx, ana, "ana", upload("cv.pdf", "%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "cv", cv.Field)

	second, err := f.students.UploadProfileFile(ctx, ana, "ana", upload("me2.jpg", "second image"))
	require.NoError(t, err)
	require.NotNil(t, second.Student.ProfileImage)
	assert.Equal(t, second.Filename, *second.Student.ProfileImage)
	require.NotNil(t, second.Student.CV)
	assert.Equal(t, cv.Filename, *second.Student.CV)

	assert.False(t, f.exists(t, first.Filename))
	assert.True(t, f.exists(t, second.Filename))
	assert.True(t, f.exists(t, cv.Filename))
}

func TestStudentService_UploadRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	ana := f.student(t, "ana")

	_, err := f.students.UploadProfileFile(context.Background(), ana, "ana", upload("run.exe", "MZ"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.students.UploadProfileFile(context.Background(), ana, "ana", upload("empty.png", ""))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestStudentService_DeleteCV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")

	up, err := f.students.UploadProfileFile(ctx, ana, "ana", upload("cv.docx", "doc"))
	require.NoError(t, err)

	profile, err := f.students.DeleteCV(ctx, ana, "ana")
	require.NoError(t, err)
	assert.Nil(t, profile.CV)
	assert.False(t, f.exists(t, up.Filename))

	// nothing left to delete
	_, err = f.students.DeleteCV(ctx, ana, "ana")
	assert.NoError(t, err)
}

func TestStudentService_RegisterEventIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")
	req := &dto.EventRegistrationRequest{Username: "ana", EventID: 2}

	_, err := f.students.RegisterEvent(ctx, ana, req)
	require.NoError(t, err)
	profile, err := f.students.RegisterEvent(ctx, ana, req)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, profile.RegisteredEvents)

	profile, err = f.students.UnregisterEvent(ctx, ana, req)
	require.NoError(t, err)
	assert.Empty(t, profile.RegisteredEvents)

	profile, err = f.students.UnregisterEvent(ctx, ana, req)
	require.NoError(t, err)
	assert.Empty(t, profile.RegisteredEvents)
}

func TestStudentService_Meetings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")

	_, err := f.students.AddMeeting(ctx, ana, &dto.AddMeetingRequest{Username: "ana", Title: "Mentor", Date: "2025-11-20"})
	require.NoError(t, err)
	profile, err := f.students.AddMeeting(ctx, ana, &dto.AddMeetingRequest{Username: "ana", Title: "Interview", Date: "2025-11-21"})
	require.NoError(t, err)
	require.Len(t, profile.Meetings, 2)

	zero, outOfRange := 0, 5
	_, err = f.students.DeleteMeeting(ctx, ana, &dto.DeleteMeetingRequest{Username: "ana", Index: &outOfRange})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	profile, err = f.students.DeleteMeeting(ctx, ana, &dto.DeleteMeetingRequest{Username: "ana", Index: &zero})
	require.NoError(t, err)
	require.Len(t, profile.Meetings, 1)
	assert.Equal(t, "Interview", profile.Meetings[0].Title)
}

func TestStudentService_Connections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")
	f.student(t, "marko")

	_, err := f.students.AddConnection(ctx, ana, &dto.ConnectionRequest{Username: "ana", Target: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.students.AddConnection(ctx, ana, &dto.ConnectionRequest{Username: "ana", Target: "ana"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.students.AddConnection(ctx, ana, &dto.ConnectionRequest{Username: "ana", Target: "marko"})
	require.NoError(t, err)
	profile, err := f.students.AddConnection(ctx, ana, &dto.ConnectionRequest{Username: "ana", Target: "marko"})
	require.NoError(t, err)
	assert.Equal(t, []string{"marko"}, profile.Connections)

	profile, err = f.students.RemoveConnection(ctx, ana, &dto.ConnectionRequest{Username: "ana", Target: "marko"})
	require.NoError(t, err)
	assert.Empty(t, profile.Connections)
}

func TestStudentService_SearchAndPublicProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.student(t, "ana")
	f.student(t, "marko")
	acme := f.company(t, "acme", "Acme")

	cards, err := f.students.SearchStudents(ctx, acme, "MAR")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "marko", cards[0].Username)

	card, err := f.students.GetPublicProfile(ctx, ana, "marko")
	require.NoError(t, err)
	assert.Equal(t, "marko", card.Username)

	_, err = f.students.GetPublicProfile(ctx, ana, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.students.SearchStudents(ctx, nil, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
