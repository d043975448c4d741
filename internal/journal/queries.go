package journal

// SQL used by PostgresStore.
const (
	queryRecordSubmission = `
		INSERT INTO submissions (
			creation_id, advertisement_id, location, job_title,
			processing_status, state, last_request_id,
			submitted_at, updated_at
		) VALUES (
			@creation_id, @advertisement_id, @location, @job_title,
			@processing_status, @state, @last_request_id,
			@submitted_at, @updated_at
		)
		ON CONFLICT (creation_id) DO UPDATE SET
			advertisement_id = EXCLUDED.advertisement_id,
			location = EXCLUDED.location,
			job_title = EXCLUDED.job_title,
			processing_status = EXCLUDED.processing_status,
			state = EXCLUDED.state,
			last_request_id = EXCLUDED.last_request_id,
			updated_at = EXCLUDED.updated_at
		RETURNING submitted_at`

	querySubmissionColumns = `
		SELECT creation_id, advertisement_id, location, job_title,
			processing_status, state, last_request_id,
			submitted_at, updated_at
		FROM submissions`

	queryGetSubmission = querySubmissionColumns + `
		WHERE creation_id = $1`

	queryListSubmissions = querySubmissionColumns + `
		WHERE ($1 = '' OR processing_status = $1)
		ORDER BY submitted_at DESC, creation_id
		LIMIT $2`

	queryUpdateStatus = `
		UPDATE submissions SET
			processing_status = @processing_status,
			state = COALESCE(NULLIF(@state, ''), state),
			last_request_id = COALESCE(NULLIF(@request_id, ''), last_request_id),
			updated_at = now()
		WHERE creation_id = @creation_id`
)
